package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/spf13/cobra"
)

func newSubdivideCmd(app *App) *cobra.Command {
	var start, end, lord, level string

	cmd := &cobra.Command{
		Use:   "subdivide",
		Short: "Split a period into its nine sub-periods",
		Example: `  dasha subdivide --start 2000-01-01 --end 2020-01-01 --lord venus
  dasha subdivide --start 2003-05-02 --end 2004-05-01 --lord sun --level antar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := [][2]string{{"start", start}, {"end", end}, {"lord", lord}}
			if missing := missingFlags(fields); len(missing) > 0 {
				if !app.IsInteractive() {
					return fmt.Errorf("missing %s", strings.Join(missing, ", "))
				}
				if err := app.RunForm(subdivideForm(&start, &end, &lord, &level)); err != nil {
					return err
				}
			}

			req, err := subdivideRequest(start, end, lord, level)
			if err != nil {
				return err
			}
			resp, err := app.Periods.Subdivide(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubdivide(resp, app.Config.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date of the period")
	cmd.Flags().StringVar(&end, "end", "", "end date of the period")
	cmd.Flags().StringVar(&lord, "lord", "", "ruling lord of the period")
	cmd.Flags().StringVar(&level, "level", domain.LevelMaha.Label(), "level of the period (maha, antar, pratyantar, sookshma)")

	return cmd
}

func subdivideRequest(start, end, lord, level string) (contract.SubdivideRequest, error) {
	var req contract.SubdivideRequest
	var err error
	if req.Start, err = parseDateFlag("start", start); err != nil {
		return req, err
	}
	if req.End, err = parseDateFlag("end", end); err != nil {
		return req, err
	}
	if req.Lord, err = parseLordFlag(lord); err != nil {
		return req, err
	}
	if req.Level, err = parseLevelFlag(level); err != nil {
		return req, err
	}
	return req, nil
}

func newCycleCmd(app *App) *cobra.Command {
	var start, lord string

	cmd := &cobra.Command{
		Use:     "cycle",
		Short:   "List the nine Mahadashas of a full 120-year cycle",
		Example: `  dasha cycle --start 1990-03-03 --lord moon`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if missing := missingFlags([][2]string{{"start", start}, {"lord", lord}}); len(missing) > 0 {
				if !app.IsInteractive() {
					return fmt.Errorf("missing %s", strings.Join(missing, ", "))
				}
				if err := app.RunForm(cycleForm(&start, &lord)); err != nil {
					return err
				}
			}

			var req contract.CycleRequest
			var err error
			if req.Start, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if req.Lord, err = parseLordFlag(lord); err != nil {
				return err
			}

			resp, err := app.Periods.Cycle(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCycle(resp, app.Config.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date of the first Mahadasha")
	cmd.Flags().StringVar(&lord, "lord", "", "lord of the first Mahadasha")

	return cmd
}
