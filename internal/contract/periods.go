package contract

import (
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

type SubdivideRequest struct {
	Start time.Time
	End   time.Time
	Lord  domain.Lord
	// Level is the level of the period being subdivided.
	Level domain.Level
}

type SubdivideResponse struct {
	Parent  PeriodView
	Periods []PeriodView
}

type CycleRequest struct {
	Start time.Time
	Lord  domain.Lord
}

type CycleResponse struct {
	Start   time.Time
	End     time.Time
	Periods []PeriodView
}
