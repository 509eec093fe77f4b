package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree_Clean(t *testing.T) {
	roots := testutil.NewMahaSequence(testutil.Date(1980, time.January, 1), domain.LordSun, 9)
	assert.Empty(t, ValidateTree(roots, 0))
}

func TestValidateTree_ToleratesOneDayOffset(t *testing.T) {
	d := testutil.Date
	roots := []*domain.DashaNode{
		testutil.NewTestNode(domain.LordSun, d(2000, 1, 1), d(2005, 12, 31)),
		testutil.NewTestNode(domain.LordMoon, d(2006, 1, 1), d(2016, 1, 1)),
	}
	assert.Empty(t, ValidateTree(roots, DefaultGapTolerance))
	assert.Len(t, ValidateTree(roots, 0), 1)
}

func TestValidateTree_ReportsEveryProblem(t *testing.T) {
	d := testutil.Date
	overlapping := testutil.NewTestNode(domain.LordMoon, d(2000, 3, 1), d(2003, 1, 1))
	outside := testutil.NewTestNode(domain.LordSun, d(1999, 1, 1), d(2000, 6, 1))
	maha := testutil.NewTestNode(domain.LordSun, d(2000, 1, 1), d(2006, 1, 1),
		testutil.WithChildren(outside, overlapping))

	roots := []*domain.DashaNode{
		maha,
		testutil.NewTestNode(domain.LordMoon, d(2007, 1, 1), d(2007, 1, 1)),
	}

	errs := ValidateTree(roots, 0)
	require.Len(t, errs, 4)

	assert.ErrorIs(t, errs[0], domain.ErrOutOfParent)
	assert.ErrorIs(t, errs[1], domain.ErrOverlap)
	assert.ErrorIs(t, errs[2], domain.ErrDegenerateInterval)
	assert.ErrorIs(t, errs[3], domain.ErrGap)
	assert.Contains(t, errs[0].Error(), "periods[0].children[0]")
	assert.Contains(t, errs[2].Error(), "periods[1]")
}
