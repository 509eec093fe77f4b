package cli

import (
	"fmt"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the chart file and report every problem found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Charts.Validate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidate(resp))
			if !resp.OK() {
				return fmt.Errorf("%s has %d skipped records and %d structural problems",
					resp.Path, len(resp.Issues), len(resp.Problems))
			}
			return nil
		},
	}
}
