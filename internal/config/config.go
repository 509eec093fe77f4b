// Package config loads dasha settings from defaults, .dasha.yaml, DASHA_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "DASHA"

// Empty-children policies for chart records whose children list is present
// but empty.
const (
	EmptyChildrenPending  = "pending"
	EmptyChildrenTerminal = "terminal"
)

// Config holds all runtime configuration.
type Config struct {
	Chart           string        `mapstructure:"chart"`
	LogMode         string        `mapstructure:"log_mode" validate:"oneof=development production"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	DateFormat      string        `mapstructure:"date_format" validate:"required"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"min=100ms"`
	EmptyChildren   string        `mapstructure:"empty_children" validate:"oneof=pending terminal"`
	SkipInvalid     bool          `mapstructure:"skip_invalid"`
	Memoize         bool          `mapstructure:"memoize"`
	Verbose         bool          `mapstructure:"verbose"`
}

// TerminalEmptyChildren reports whether an empty children list marks a period
// as having no sub-periods.
func (c Config) TerminalEmptyChildren() bool {
	return c.EmptyChildren == EmptyChildrenTerminal
}

// SetDefaults registers the built-in default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("chart", "")
	v.SetDefault("log_mode", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("date_format", time.DateOnly)
	v.SetDefault("refresh_interval", time.Minute)
	v.SetDefault("empty_children", EmptyChildrenPending)
	v.SetDefault("skip_invalid", false)
	v.SetDefault("memoize", false)
	v.SetDefault("verbose", false)
}

// Init points v at the config file and the environment. An explicit file that
// cannot be read is an error; a missing .dasha.yaml is not.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".dasha")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// BindFlags binds the flags that share a name with a config key. Flag names
// use dashes where keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Load unmarshals v into a Config after applying the defaults and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogMode = strings.ToLower(cfg.LogMode)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.EmptyChildren = strings.ToLower(cfg.EmptyChildren)
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints and reports all
// failures at once.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	key := keyFor(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", key, strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", key)
	}
}

var fieldKeys = map[string]string{
	"Chart":           "chart",
	"LogMode":         "log_mode",
	"LogLevel":        "log_level",
	"DateFormat":      "date_format",
	"RefreshInterval": "refresh_interval",
	"EmptyChildren":   "empty_children",
	"SkipInvalid":     "skip_invalid",
	"Memoize":         "memoize",
	"Verbose":         "verbose",
}

func keyFor(field string) string {
	if k, ok := fieldKeys[field]; ok {
		return k
	}
	return strings.ToLower(field)
}

func isKey(key string) bool {
	for _, k := range fieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
