package cli

import (
	"fmt"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dashaHuhTheme returns a huh theme using the formatter palette.
func dashaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDate accepts any date layout the chart reader understands.
func validateDate(s string) error {
	if _, err := importer.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateDate)
}

func lordSelect(title string, value *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, domain.LordCount)
	for _, l := range domain.LordOrder {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%dy)", l, l.Years()), l.String()))
	}
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

func levelSelect(value *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, int(domain.MaxLevel))
	for l := domain.LevelMaha; l < domain.MaxLevel; l++ {
		options = append(options, huh.NewOption(l.Label(), l.Label()))
	}
	return huh.NewSelect[string]().
		Title("Level of the period").
		Options(options...).
		Value(value)
}

// subdivideForm asks for the fields of a period to subdivide. Fields
// already given as flags are prefilled.
func subdivideForm(start, end, lord, level *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput("Start date", start),
			dateInput("End date", end),
			lordSelect("Ruling lord", lord),
			levelSelect(level),
		),
	).WithTheme(dashaHuhTheme()).WithShowHelp(false)
}

// cycleForm asks for the start and first lord of a cycle.
func cycleForm(start, lord *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput("Cycle start date", start),
			lordSelect("First Mahadasha lord", lord),
		),
	).WithTheme(dashaHuhTheme()).WithShowHelp(false)
}
