package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/domain"
)

const progressWidth = 30

// FormatNow renders the active path as a table followed by the progress of
// the deepest period.
func FormatNow(resp *contract.NowResponse, layout string) string {
	var b strings.Builder
	b.WriteString(Header("Active periods at " + FormatDate(resp.At, layout)))
	b.WriteString("\n")

	deepest, ok := resp.Deepest()
	if !ok {
		b.WriteString(Dim("No period of the chart covers this date.") + "\n")
		return b.String()
	}

	rows := make([][]string, len(resp.Path))
	for i, p := range resp.Path {
		rows[i] = []string{
			p.Level.Label(),
			LordName(p.Lord),
			FormatDate(p.Start, layout),
			FormatDate(p.End, layout),
			FormatSpan(p.End.Sub(p.Start)),
			RenderCompactBar(p.Progress, 10),
		}
	}
	b.WriteString(RenderTable([]string{"LEVEL", "LORD", "START", "END", "SPAN", "ELAPSED"}, rows))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s  %s\n",
		Bold(deepest.Level.Label()+" "+deepest.Lord.String()),
		RenderProgress(resp.Progress, progressWidth),
		Dim(FormatSpan(resp.Remaining)+" remaining"),
	)
	return b.String()
}

// FormatTree renders an expanded chart, marking the active path.
func FormatTree(resp *contract.TreeResponse, layout string) string {
	var items []TreeItem
	var walk func(nodes []*domain.DashaNode, ancestors []bool)
	walk = func(nodes []*domain.DashaNode, ancestors []bool) {
		for i, n := range nodes {
			last := i == len(nodes)-1
			items = append(items, TreeItem{
				Title: fmt.Sprintf("%s  %s → %s",
					LordName(n.Lord), FormatDate(n.Start, layout), FormatDate(n.End, layout)),
				Ancestors: ancestors,
				IsLast:    last,
				Active:    resp.IsActive(n),
				Detail:    FormatSpan(n.Duration()),
			})
			if len(n.Children) > 0 {
				next := append(append([]bool(nil), ancestors...), last)
				walk(n.Children, next)
			}
		}
	}
	walk(resp.Roots, nil)

	if len(items) == 0 {
		return Dim("Chart has no periods.") + "\n"
	}
	return Header("Dasha tree") + "\n" + RenderTree(items)
}

// FormatSubdivide renders the sub-periods of one period.
func FormatSubdivide(resp *contract.SubdivideResponse, layout string) string {
	p := resp.Parent
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %s sub-periods", p.Lord, p.Level.Label())))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s → %s  %s\n\n",
		FormatDate(p.Start, layout), FormatDate(p.End, layout), Dim(FormatSpan(p.End.Sub(p.Start))))
	b.WriteString(formatPeriodTable(resp.Periods, layout))
	return b.String()
}

// FormatCycle renders the Mahadashas of a full cycle.
func FormatCycle(resp *contract.CycleResponse, layout string) string {
	var b strings.Builder
	b.WriteString(Header("Vimshottari cycle"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s → %s  %s\n\n",
		FormatDate(resp.Start, layout), FormatDate(resp.End, layout), Dim(strconv.Itoa(domain.CycleYears)+" years"))
	b.WriteString(formatPeriodTable(resp.Periods, layout))
	return b.String()
}

func formatPeriodTable(periods []contract.PeriodView, layout string) string {
	rows := make([][]string, len(periods))
	for i, p := range periods {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			LordName(p.Lord),
			FormatDate(p.Start, layout),
			FormatDate(p.End, layout),
			FormatSpan(p.End.Sub(p.Start)),
			FormatYears(p.Years),
		}
	}
	return RenderTable([]string{"#", "LORD", "START", "END", "SPAN", "YEARS"}, rows)
}

// FormatValidate lists conversion issues and structural problems.
func FormatValidate(resp *contract.ValidateResponse) string {
	if resp.OK() {
		return fmt.Sprintf("%s %s: %d periods, no problems found\n",
			StyleGreen.Render("✔"), resp.Path, resp.PeriodCount)
	}

	var b strings.Builder
	section := func(title string, errs []error) {
		if len(errs) == 0 {
			return
		}
		b.WriteString(Header(title) + "\n")
		for _, err := range errs {
			b.WriteString(StyleRed.Render("✖ ") + err.Error() + "\n")
		}
		b.WriteString("\n")
	}
	section("Records skipped", resp.Issues)
	section("Structural problems", resp.Problems)
	fmt.Fprintf(&b, "%s: %d periods loaded, %d skipped, %d problems\n",
		resp.Path, resp.PeriodCount, len(resp.Issues), len(resp.Problems))
	return b.String()
}
