// Package contract defines the request and response shapes exchanged between
// the CLI and the services.
package contract

import (
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// PeriodView is a flattened, display-ready period.
type PeriodView struct {
	Level    domain.Level
	Lord     domain.Lord
	Start    time.Time
	End      time.Time
	Years    float64
	Progress float64
}

// NewPeriodView snapshots n, with progress measured at now.
func NewPeriodView(n *domain.DashaNode, now time.Time) PeriodView {
	return PeriodView{
		Level:    n.Level,
		Lord:     n.Lord,
		Start:    n.Start,
		End:      n.End,
		Years:    n.Years(),
		Progress: n.Progress(now),
	}
}

// PeriodViews snapshots every node.
func PeriodViews(nodes []*domain.DashaNode, now time.Time) []PeriodView {
	views := make([]PeriodView, len(nodes))
	for i, n := range nodes {
		views[i] = NewPeriodView(n, now)
	}
	return views
}

type ErrorCode string

const (
	ErrNoChart      ErrorCode = "NO_CHART"
	ErrInvalidChart ErrorCode = "INVALID_CHART"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }
