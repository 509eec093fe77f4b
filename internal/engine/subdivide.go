// Package engine implements the Vimshottari period arithmetic: proportional
// subdivision of an interval among the nine lords, and resolution of the
// active path through a dasha tree at a given instant.
//
// Everything here is pure. Functions never mutate the nodes they are given;
// synthesized periods are freshly allocated.
package engine

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// Subdivide splits [start, end] into the nine sub-periods of a parent at
// parentLevel ruled by lord. The first sub-period belongs to lord itself and
// the rest follow the cyclic order. Each share is lordYears/120 of the
// parent's actual duration; boundaries are computed from the parent bounds so
// the last child ends exactly at end.
func Subdivide(start, end time.Time, lord domain.Lord, parentLevel domain.Level) ([]*domain.DashaNode, error) {
	if parentLevel >= domain.MaxLevel {
		return nil, fmt.Errorf("subdividing %s %s period: %w", lord, parentLevel.Label(), domain.ErrMaxDepthExceeded)
	}
	if !lord.Valid() {
		return nil, fmt.Errorf("subdividing period: %w", domain.ErrUnknownLord)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("subdividing %s period %s..%s: %w",
			lord, start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrDegenerateInterval)
	}
	return partition(start, end, lord, parentLevel+1), nil
}

// SubdivideNode is Subdivide applied to a node's own interval and lord.
// Nodes explicitly marked as terminal are reported as not drillable.
func SubdivideNode(n *domain.DashaNode) ([]*domain.DashaNode, error) {
	if n.IsTerminal() && n.Level < domain.MaxLevel {
		return nil, fmt.Errorf("subdividing %s %s period: %w", n.Lord, n.Level.Label(), domain.ErrNotDrillable)
	}
	return Subdivide(n.Start, n.End, n.Lord, n.Level)
}

// FullCycle returns the nine Mahadashas of a complete 120-year cycle that
// begins at start with lord. Period lengths use domain.DaysPerYear.
func FullCycle(start time.Time, lord domain.Lord) ([]*domain.DashaNode, error) {
	if !lord.Valid() {
		return nil, fmt.Errorf("building cycle: %w", domain.ErrUnknownLord)
	}
	return partition(start, start.Add(domain.CycleDuration), lord, domain.LevelMaha), nil
}

// partition assumes end > start and a valid lord.
func partition(start, end time.Time, lord domain.Lord, level domain.Level) []*domain.DashaNode {
	boundary := boundaries(start, end)

	state := domain.ChildrenUnmaterialized
	if level >= domain.MaxLevel {
		state = domain.ChildrenNone
	}

	children := make([]*domain.DashaNode, 0, domain.LordCount)
	cursor := start
	var cum int64
	for _, l := range lord.Sequence() {
		cum += int64(l.Years())
		next := boundary(cum)
		children = append(children, &domain.DashaNode{
			Lord:       l,
			Start:      cursor,
			End:        next,
			Level:      level,
			ChildState: state,
		})
		cursor = next
	}
	return children
}

// boundaries returns f(c) = start + (end-start)*c/120, floored to the
// nanosecond, with f(120) = end. The span is carried as whole seconds plus a
// nanosecond remainder so parents longer than a time.Duration (~292 years)
// keep exact proportions.
func boundaries(start, end time.Time) func(cum int64) time.Time {
	secs := end.Unix() - start.Unix()
	nanos := int64(end.Nanosecond() - start.Nanosecond())
	if nanos < 0 {
		secs--
		nanos += int64(time.Second)
	}
	base, baseNanos := start.Unix(), int64(start.Nanosecond())
	return func(cum int64) time.Time {
		if cum == domain.CycleYears {
			return end
		}
		whole := secs * cum
		offNanos := (whole%domain.CycleYears*int64(time.Second) + nanos*cum) / domain.CycleYears
		return time.Unix(base+whole/domain.CycleYears, baseNanos+offNanos).In(start.Location())
	}
}
