package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/watch"
	"github.com/spf13/cobra"
)

func newNowCmd(app *App) *cobra.Command {
	var at string
	var watchChart bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the periods running now, from Mahadasha to Prana",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pinned, err := parseOptionalDate("at", at)
			if err != nil {
				return err
			}
			if watchChart {
				return watchNow(cmd, app, pinned)
			}
			return renderNow(cmd, app, pinned)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "date to resolve instead of now (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&watchChart, "watch", false, "re-render when the chart file changes")

	return cmd
}

func renderNow(cmd *cobra.Command, app *App, pinned *time.Time) error {
	req := contract.NewNowRequest()
	at := app.instant(pinned)
	req.Now = &at

	resp, err := app.Charts.Now(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNow(resp, app.Config.DateFormat))
	return nil
}

// watchNow renders once, then again on every chart change and refresh tick,
// until the command's context is cancelled.
func watchNow(cmd *cobra.Command, app *App, pinned *time.Time) error {
	if err := renderNow(cmd, app, pinned); err != nil {
		return err
	}

	w, err := watch.New(app.Charts.Path(), watch.WithLogger(app.Log))
	if err != nil {
		return fmt.Errorf("watching chart: %w", err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching chart: %w", err)
	}

	ticker := time.NewTicker(app.Config.RefreshInterval)
	defer ticker.Stop()

	out := cmd.OutOrStdout()
	rerender := func() {
		fmt.Fprintln(out)
		if err := renderNow(cmd, app, pinned); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if change.Kind == watch.ChangeRemoved {
				fmt.Fprintln(out, formatter.Dim("Chart file removed, waiting for it to come back."))
				continue
			}
			rerender()
		case <-ticker.C:
			rerender()
		}
	}
}
