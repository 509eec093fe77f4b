package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableDate indicates a date field is present but not in any
	// recognized format.
	ErrUnparseableDate = errors.New("unparseable date")

	// ErrMissingEndDate indicates a period record carries no end date.
	ErrMissingEndDate = errors.New("missing end date")

	// ErrUnknownChainStart indicates a record omits its start and the end of
	// the preceding sibling is not known.
	ErrUnknownChainStart = errors.New("unknown chain start")

	// ErrMaxDepthExceeded indicates an attempt to go below the Prana level.
	ErrMaxDepthExceeded = errors.New("maximum dasha depth exceeded")

	// ErrIndexOutOfRange indicates an invalid breadcrumb index.
	ErrIndexOutOfRange = errors.New("breadcrumb index out of range")

	// ErrDegenerateInterval indicates a period whose end is not after its start.
	ErrDegenerateInterval = errors.New("degenerate interval")

	// ErrUnknownLord indicates a planet identifier that is not a Vimshottari lord.
	ErrUnknownLord = errors.New("unknown lord")

	// ErrNodeNotInLevel indicates a drill request for a node that is not
	// displayed at the current level.
	ErrNodeNotInLevel = errors.New("node is not in the current level")

	// ErrNotDrillable indicates a node explicitly marked as having no sub-periods.
	ErrNotDrillable = errors.New("node has no sub-periods")

	// ErrOverlap indicates two sibling periods overlap.
	ErrOverlap = errors.New("overlapping periods")

	// ErrGap indicates a gap between two consecutive sibling periods.
	ErrGap = errors.New("gap between periods")

	// ErrOutOfParent indicates a child period extends outside its parent.
	ErrOutOfParent = errors.New("period outside parent")
)

// FieldError ties a failure to the input field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
