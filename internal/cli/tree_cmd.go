package cli

import (
	"fmt"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var at string
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the chart as a tree, generating sub-periods down to --depth levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pinned, err := parseOptionalDate("at", at)
			if err != nil {
				return err
			}

			req := contract.NewTreeRequest()
			if cmd.Flags().Changed("depth") {
				req.Depth = depth
			}
			now := app.instant(pinned)
			req.Now = &now

			resp, err := app.Charts.Tree(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTree(resp, app.Config.DateFormat))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 2, "levels to show, 1 (Maha) to 5 (Prana)")
	cmd.Flags().StringVar(&at, "at", "", "date whose active periods are marked (YYYY-MM-DD)")

	return cmd
}
