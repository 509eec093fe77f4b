package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// dateLayouts are tried in order. Values carry date-level precision only;
// any time-of-day component is dropped after parsing.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses s in any recognized layout and returns midnight UTC of
// that calendar date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, domain.ErrUnparseableDate
}

// Span is a normalized period interval.
type Span struct {
	Start time.Time
	End   time.Time
}

// Normalize resolves the start and end of rec. An explicit start field wins;
// without one the period starts at chainStart, which the caller sets to the
// end of the preceding sibling (or the parent's start for the first child).
// The returned End becomes the next sibling's chainStart.
func Normalize(rec PeriodRecord, chainStart *time.Time) (Span, error) {
	var span Span

	if name, value, ok := domain.CoalesceField(startFieldNames, rec.startFields()...); ok {
		t, err := ParseDate(value)
		if err != nil {
			return Span{}, &domain.FieldError{Field: name, Value: value, Err: err}
		}
		span.Start = t
	} else if chainStart != nil {
		span.Start = *chainStart
	} else {
		return Span{}, &domain.FieldError{Field: "start", Err: domain.ErrUnknownChainStart}
	}

	name, value, ok := domain.CoalesceField(endFieldNames, rec.endFields()...)
	if !ok {
		return Span{}, &domain.FieldError{Field: "end", Err: domain.ErrMissingEndDate}
	}
	t, err := ParseDate(value)
	if err != nil {
		return Span{}, &domain.FieldError{Field: name, Value: value, Err: err}
	}
	span.End = t

	return span, nil
}

// resolveLord reads the planet from rec, falling back to expected when the
// record names none.
func resolveLord(rec PeriodRecord, expected *domain.Lord) (domain.Lord, error) {
	if _, value, ok := domain.CoalesceField(lordFieldNames, rec.lordFields()...); ok {
		return domain.ParseLord(value)
	}
	if expected != nil {
		return *expected, nil
	}
	return 0, &domain.FieldError{Field: "lord", Err: fmt.Errorf("%w: no planet given and none can be inferred", domain.ErrUnknownLord)}
}
