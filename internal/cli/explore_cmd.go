package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newExploreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Browse the dasha hierarchy interactively",
		Long: `Browse the chart level by level. Sub-periods are generated as you drill in.

  ↑/k ↓/j   move          enter   drill into period
  esc       up one level  0-4     jump to breadcrumb
  n         jump to now   r       back to Mahadashas
  q         quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := app.Charts.Navigator(cmd.Context())
			if err != nil {
				return err
			}

			m := newExploreModel(nav, app.Now, app.Config.DateFormat, app.Config.RefreshInterval)
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
}
