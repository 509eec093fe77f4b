package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/alexanderramin/dasha/internal/testutil"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2020, time.June, 15, 12, 0, 0, 0, time.UTC)

// testApp returns an App with a pinned clock and a quiet logger. Services
// are built from flags and configuration like in production.
func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	testutil.Chdir(t, t.TempDir())
	return &App{
		Log: logger.Nop(),
		Now: func() time.Time { return fixedNow },
	}
}

func sampleChart(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "chart.json", testutil.SampleChartJSON)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdContext(t, context.Background(), app, args...)
}

func executeCmdContext(t *testing.T, ctx context.Context, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

// --- now ---

func TestNowCmd_ShowsActivePath(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "now", "--chart", sampleChart(t))
	require.NoError(t, err)

	assert.Contains(t, out, "ACTIVE PERIODS AT 2020-06-15")
	assert.Contains(t, out, "Saturn")
	assert.Contains(t, out, "Prana")
	assert.Contains(t, out, "remaining")
}

func TestNowCmd_At(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "now", "--chart", sampleChart(t), "--at", "1990-05-01")
	require.NoError(t, err)

	assert.Contains(t, out, "ACTIVE PERIODS AT 1990-05-01")
	assert.Contains(t, out, "Rahu")
}

func TestNowCmd_OutsideChart(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "now", "--chart", sampleChart(t), "--at", "2099-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No period of the chart covers this date.")
}

func TestNowCmd_BadDate(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "now", "--chart", sampleChart(t), "--at", "someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `--at "someday"`)
}

func TestNowCmd_NoChart(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_CHART")
}

func TestNowCmd_ChartFromEnv(t *testing.T) {
	app := testApp(t)
	t.Setenv("DASHA_CHART", sampleChart(t))

	out, err := executeCmd(t, app, "now")
	require.NoError(t, err)
	assert.Contains(t, out, "Saturn")
}

func TestNowCmd_ChartFromConfigFile(t *testing.T) {
	app := testApp(t)
	chart := sampleChart(t)
	cfg := testutil.WriteFile(t, "dasha.yaml", "chart: "+chart+"\ndate_format: 02 Jan 2006\n")

	out, err := executeCmd(t, app, "now", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVE PERIODS AT 15 JUN 2020")
	assert.Equal(t, "02 Jan 2006", app.Config.DateFormat)
}

func TestNowCmd_WatchRerendersOnChange(t *testing.T) {
	app := testApp(t)
	chart := sampleChart(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	var out string
	var err error
	go func() {
		defer close(done)
		out, err = executeCmdContext(t, ctx, app, "now", "--chart", chart, "--watch")
	}()

	time.Sleep(300 * time.Millisecond)
	updated := strings.Replace(testutil.SampleChartJSON, `"Saturn", "endDate": "2033-01-01"`, `"Saturn", "endDate": "2034-01-01"`, 1)
	require.NoError(t, os.WriteFile(chart, []byte(updated), 0o644))
	time.Sleep(500 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ACTIVE PERIODS AT"), "rendered once at start and once after the edit")
	assert.Contains(t, out, "2034-01-01")
}

// --- tree ---

func TestTreeCmd_DefaultDepth(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "tree", "--chart", sampleChart(t))
	require.NoError(t, err)

	assert.Contains(t, out, "DASHA TREE")
	assert.Contains(t, out, "▶ Saturn  2014-01-01 → 2033-01-01")
	// 4 Mahadashas with 9 Antardashas each.
	assert.Equal(t, 4*9, strings.Count(out, "├─ ")+strings.Count(out, "└─ "))
}

func TestTreeCmd_DepthOne(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "tree", "--chart", sampleChart(t), "--depth", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "├─ ")
}

func TestTreeCmd_BadDepth(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "tree", "--chart", sampleChart(t), "--depth", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth must be between 1 and 5")
}

func TestTreeCmd_TerminalEmptyChildren(t *testing.T) {
	app := testApp(t)
	t.Setenv("DASHA_EMPTY_CHILDREN", "terminal")

	out, err := executeCmd(t, app, "tree", "--chart", sampleChart(t))
	require.NoError(t, err)
	// Mercury lists no sub-periods, so only three Mahadashas are expanded.
	assert.Equal(t, 3*9, strings.Count(out, "├─ ")+strings.Count(out, "└─ "))
}

// --- subdivide / cycle ---

func TestSubdivideCmd(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "subdivide", "--start", "2000-01-01", "--end", "2020-01-01", "--lord", "ve")
	require.NoError(t, err)

	assert.Contains(t, out, "VENUS MAHA SUB-PERIODS")
	lines := strings.Split(out, "\n")
	var venusRow string
	for _, l := range lines {
		if strings.HasPrefix(l, "1 ") {
			venusRow = l
		}
	}
	assert.Contains(t, venusRow, "Venus")
	assert.Contains(t, venusRow, "2000-01-01")
}

func TestSubdivideCmd_PranaRejected(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "subdivide", "--start", "2000-01-01", "--end", "2000-01-02", "--lord", "sun", "--level", "prana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum dasha depth exceeded")
}

func TestSubdivideCmd_MissingFlagsNonInteractive(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "subdivide", "--start", "2000-01-01")
	require.Error(t, err)
	assert.Equal(t, "missing --end, --lord", err.Error())
}

func TestSubdivideCmd_MissingFlagsPromptWhenInteractive(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	var prompted bool
	app.RunForm = func(f *huh.Form) error {
		prompted = true
		return nil
	}

	// The form is stubbed, so the missing --lord stays empty.
	_, err := executeCmd(t, app, "subdivide", "--start", "2000-01-01", "--end", "2020-01-01")
	assert.True(t, prompted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lord")
}

func TestCycleCmd(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "cycle", "--start", "1990-03-03", "--lord", "chandra")
	require.NoError(t, err)

	assert.Contains(t, out, "VIMSHOTTARI CYCLE")
	assert.Contains(t, out, "Moon")
	assert.Contains(t, out, "10.00y")
}

func TestCycleCmd_UnknownLord(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "cycle", "--start", "1990-03-03", "--lord", "pluto")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown lord")
}

// --- validate ---

func TestValidateCmd_Clean(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "validate", "--chart", sampleChart(t))
	require.NoError(t, err)
	assert.Contains(t, out, "4 periods, no problems found")
}

func TestValidateCmd_ReportsProblems(t *testing.T) {
	app := testApp(t)
	chart := testutil.WriteFile(t, "chart.yaml", `
periods:
  - planet: Sun
    start_date: "2000-01-01"
    end_date: "2006-01-01"
  - planet: Moon
    start_date: "2006-06-01"
    end_date: "2016-01-01"
  - planet: Mars
`)
	out, err := executeCmd(t, app, "validate", "--chart", chart)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 skipped records and 1 structural problems")
	assert.Contains(t, out, "periods[2]")
	assert.Contains(t, out, "gap between periods")
	assert.Contains(t, out, filepath.Base(chart))
}

// --- root ---

func TestRootCmd_InvalidConfig(t *testing.T) {
	app := testApp(t)
	t.Setenv("DASHA_EMPTY_CHILDREN", "maybe")

	_, err := executeCmd(t, app, "now", "--chart", sampleChart(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty_children must be one of")
}

func TestRootCmd_ListsCommands(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "--help")
	require.NoError(t, err)
	for _, name := range []string{"now", "tree", "explore", "subdivide", "cycle", "validate"} {
		assert.Contains(t, out, name)
	}
}

func TestExploreCmd_NoChart(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "explore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_CHART")
}
