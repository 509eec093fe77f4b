package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/importer"
)

// parseDateFlag parses a date given on the command line in any layout the
// chart reader accepts.
func parseDateFlag(name, value string) (time.Time, error) {
	t, err := importer.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s %q: %w", name, value, err)
	}
	return t, nil
}

// parseOptionalDate parses value when set; an empty value means "now".
func parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDateFlag(name, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseLordFlag(value string) (domain.Lord, error) {
	l, err := domain.ParseLord(value)
	if err != nil {
		return 0, fmt.Errorf("--lord: %w", err)
	}
	return l, nil
}

func parseLevelFlag(value string) (domain.Level, error) {
	l, err := domain.ParseLevel(value)
	if err != nil {
		return 0, fmt.Errorf("--level: %w", err)
	}
	return l, nil
}

// missingFlags names the flags in order whose value is empty.
func missingFlags(flags [][2]string) []string {
	var missing []string
	for _, f := range flags {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, "--"+f[0])
		}
	}
	return missing
}
