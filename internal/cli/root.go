package cli

import (
	"time"

	"github.com/alexanderramin/dasha/internal/config"
	"github.com/alexanderramin/dasha/internal/importer"
	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/alexanderramin/dasha/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// App holds the services and settings shared by all commands. Fields left
// nil are built from configuration when a command starts, so tests can pin
// any of them.
type App struct {
	Charts  service.ChartService
	Periods service.PeriodService
	Config  config.Config
	Log     *logger.Logger

	// Now returns the current instant.
	Now func() time.Time
	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// RunForm runs a prompt form to completion.
	RunForm func(*huh.Form) error
}

// NewRootCmd creates the top-level "dasha" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "dasha",
		Short: "Vimshottari dasha periods: what runs now, and drill-down through the hierarchy",
		Long: `dasha reads a chart of Mahadasha periods (JSON, YAML or TOML) and shows the
periods active at any date down to the Prana level. Sub-periods missing from
the chart are generated from the Vimshottari proportions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap(v, cfgFile, cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Log != nil {
				app.Log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default .dasha.yaml in the working or home directory)")
	pf.String("chart", "", "chart file (.json, .yaml, .yml or .toml)")
	pf.Bool("verbose", false, "log debug output to stderr")
	pf.Bool("skip-invalid", false, "skip chart records that cannot be read instead of failing")

	root.AddCommand(
		newNowCmd(app),
		newTreeCmd(app),
		newExploreCmd(app),
		newSubdivideCmd(app),
		newCycleCmd(app),
		newValidateCmd(app),
	)

	return root
}

func (a *App) bootstrap(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) error {
	if err := config.Init(v, cfgFile); err != nil {
		return err
	}
	if err := config.BindFlags(v, flags); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.Config = cfg

	if a.Log == nil {
		log, err := logger.New(cfg.LogMode, cfg.LogLevel)
		if err != nil {
			return err
		}
		a.Log = log
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.IsInteractive == nil {
		a.IsInteractive = func() bool { return false }
	}
	if a.RunForm == nil {
		a.RunForm = func(f *huh.Form) error { return f.Run() }
	}

	observer := service.NewLogUseCaseObserver(a.Log)
	if a.Charts == nil {
		a.Charts = service.NewChartService(cfg.Chart, service.ChartOptions{
			Import: importer.Options{
				SkipInvalid:           cfg.SkipInvalid,
				EmptyChildrenTerminal: cfg.TerminalEmptyChildren(),
			},
			Memoize: cfg.Memoize,
		}, a.Log, observer)
	}
	if a.Periods == nil {
		a.Periods = service.NewPeriodService(observer)
	}
	a.Log.Debug("config loaded", "chart", cfg.Chart, "empty_children", cfg.EmptyChildren, "memoize", cfg.Memoize)
	return nil
}

// instant returns the pinned time if set, otherwise the current time.
func (a *App) instant(pinned *time.Time) time.Time {
	if pinned != nil {
		return *pinned
	}
	return a.Now().UTC()
}
