package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders t in layout, falling back to YYYY-MM-DD.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = time.DateOnly
	}
	return t.Format(layout)
}

const monthDays = domain.DaysPerYear / 12

// FormatSpan renders a duration in calendar-ish units, e.g. "2y 4m 12d".
// Years and months use the same average lengths as the rest of dasha.
// Spans under a day are shown in hours.
func FormatSpan(d time.Duration) string {
	if d <= 0 {
		return "0d"
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}

	days := d.Hours() / 24
	y := int(days / domain.DaysPerYear)
	days -= float64(y) * domain.DaysPerYear
	m := int(days / monthDays)
	days -= float64(m) * monthDays
	dd := int(math.Round(days))
	if float64(dd) >= monthDays {
		dd = 0
		m++
	}
	if m == 12 {
		m = 0
		y++
	}

	var parts []string
	if y > 0 {
		parts = append(parts, fmt.Sprintf("%dy", y))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if dd > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dd", dd))
	}
	return strings.Join(parts, " ")
}

// FormatYears renders a fractional year count.
func FormatYears(years float64) string {
	return fmt.Sprintf("%.2fy", years)
}
