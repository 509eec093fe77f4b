package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/engine"
	"github.com/alexanderramin/dasha/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoots() []*domain.DashaNode {
	return testutil.NewMahaSequence(testutil.Date(1980, time.January, 1), domain.LordRahu, 3)
}

func TestFormatNow(t *testing.T) {
	roots := sampleRoots()
	at := testutil.Date(2005, time.March, 1)
	res := engine.Resolve(roots, at)

	out := FormatNow(&contract.NowResponse{
		At:        at,
		Path:      contract.PeriodViews(res.Path, at),
		Progress:  res.Progress,
		Remaining: res.Remaining(at),
	}, "")

	assert.Contains(t, out, "ACTIVE PERIODS AT 2005-03-01")
	for _, label := range []string{"Maha", "Antar", "Pratyantar", "Sookshma", "Prana"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "Jupiter")
	assert.Contains(t, out, "remaining")
}

func TestFormatNow_NothingActive(t *testing.T) {
	out := FormatNow(&contract.NowResponse{At: testutil.Date(1900, 1, 1)}, "")
	assert.Contains(t, out, "No period of the chart covers this date.")
}

func TestFormatTree_MarksActivePath(t *testing.T) {
	roots := sampleRoots()
	at := testutil.Date(2005, time.March, 1)
	resp := &contract.TreeResponse{
		At:     at,
		Roots:  engine.ExpandAll(roots, 1),
		Active: engine.Resolve(roots, at).Path,
	}

	out := FormatTree(resp, "")
	assert.Contains(t, out, "DASHA TREE")
	assert.Contains(t, out, "▶ Jupiter  "+FormatDate(roots[1].Start, ""))
	assert.Contains(t, out, "├─ ")
	assert.Contains(t, out, "└─ ")
	assert.NotContains(t, out, "▶ Rahu")
}

func TestFormatTree_Empty(t *testing.T) {
	assert.Contains(t, FormatTree(&contract.TreeResponse{}, ""), "Chart has no periods.")
}

func TestFormatSubdivide(t *testing.T) {
	start := testutil.Date(2000, time.January, 1)
	end := start.Add(20 * domain.YearDuration)
	periods, err := engine.Subdivide(start, end, domain.LordVenus, domain.LevelMaha)
	require.NoError(t, err)

	out := FormatSubdivide(&contract.SubdivideResponse{
		Parent:  contract.PeriodView{Lord: domain.LordVenus, Level: domain.LevelMaha, Start: start, End: end, Years: 20},
		Periods: contract.PeriodViews(periods, start),
	}, "")

	assert.Contains(t, out, "VENUS MAHA SUB-PERIODS")
	assert.Contains(t, out, "3.33y")
	assert.Contains(t, out, "1.00y")
	assert.Contains(t, out, "Ketu")
}

func TestFormatCycle(t *testing.T) {
	start := testutil.Date(1990, time.March, 3)
	periods, err := engine.FullCycle(start, domain.LordMoon)
	require.NoError(t, err)

	out := FormatCycle(&contract.CycleResponse{
		Start:   start,
		End:     periods[8].End,
		Periods: contract.PeriodViews(periods, start),
	}, "")
	assert.Contains(t, out, "VIMSHOTTARI CYCLE")
	assert.Contains(t, out, "120 years")
	assert.Contains(t, out, "10.00y")
}

func TestFormatValidate(t *testing.T) {
	ok := FormatValidate(&contract.ValidateResponse{Path: "chart.json", PeriodCount: 9})
	assert.Contains(t, ok, "✔ chart.json: 9 periods, no problems found")

	bad := FormatValidate(&contract.ValidateResponse{
		Path:        "chart.json",
		PeriodCount: 2,
		Issues:      []error{errors.New("periods[2]: end_date \"garbage\": unparseable date")},
		Problems:    []error{errors.New("periods[1]: gap")},
	})
	assert.Contains(t, bad, "RECORDS SKIPPED")
	assert.Contains(t, bad, "STRUCTURAL PROBLEMS")
	assert.Contains(t, bad, "✖ periods[1]: gap")
	assert.Contains(t, bad, "2 periods loaded, 1 skipped, 1 problems")
}
