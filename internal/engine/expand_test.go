package engine

import (
	"testing"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_GeneratesRequestedDepth(t *testing.T) {
	maha := testutil.NewTestNode(domain.LordJupiter,
		testutil.Date(2001, time.January, 1), testutil.Date(2017, time.January, 1))

	out := Expand(maha, 2)

	require.Len(t, out.Children, domain.LordCount)
	for _, antar := range out.Children {
		require.Len(t, antar.Children, domain.LordCount)
		for _, p := range antar.Children {
			assert.Nil(t, p.Children, "stops after two levels")
		}
	}
	assert.Nil(t, maha.Children, "input is not mutated")
	assert.Equal(t, domain.ChildrenUnmaterialized, maha.ChildState)
}

func TestExpand_KeepsExistingAndTerminal(t *testing.T) {
	d := func(day int) time.Time { return testutil.Date(2000, time.January, day) }
	terminal := testutil.NewTestNode(domain.LordSun, d(1), d(10), testutil.WithNoChildren())
	open := testutil.NewTestNode(domain.LordMoon, d(10), d(20))
	maha := testutil.NewTestNode(domain.LordSun, d(1), d(20), testutil.WithChildren(terminal, open))

	out := Expand(maha, 3)

	require.Len(t, out.Children, 2, "existing children kept as-is")
	assert.Nil(t, out.Children[0].Children)
	assert.Len(t, out.Children[1].Children, domain.LordCount)
	assert.Nil(t, open.Children)
}

func TestExpandAll_ZeroDepthCopies(t *testing.T) {
	roots := testutil.NewMahaSequence(testutil.Date(2000, time.January, 1), domain.LordKetu, 2)
	out := ExpandAll(roots, 0)

	require.Len(t, out, 2)
	assert.Equal(t, roots[0], out[0])
	assert.NotSame(t, roots[0], out[0])
}
