package engine

import (
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// Resolution is the active path through a dasha tree at one instant.
type Resolution struct {
	// Path runs from the active Mahadasha down to the deepest active period.
	// Periods synthesized during resolution are not attached to the tree.
	Path []*domain.DashaNode
	// Progress is the elapsed percentage of the deepest active period.
	Progress float64
}

// Deepest returns the last node of the path, or nil when nothing is active.
func (r Resolution) Deepest() *domain.DashaNode {
	if len(r.Path) == 0 {
		return nil
	}
	return r.Path[len(r.Path)-1]
}

// Remaining returns the time left in the deepest active period.
func (r Resolution) Remaining(now time.Time) time.Duration {
	d := r.Deepest()
	if d == nil || now.After(d.End) {
		return 0
	}
	return d.End.Sub(now)
}

// Includes reports whether a period with the same lord, level and bounds as n
// is on the path. Synthesized nodes are compared by value.
func (r Resolution) Includes(n *domain.DashaNode) bool {
	if int(n.Level) < 0 || int(n.Level) >= len(r.Path) {
		return false
	}
	p := r.Path[n.Level]
	return p == n || (p.Lord == n.Lord && p.Start.Equal(n.Start) && p.End.Equal(n.End))
}

// Resolve walks roots downward, at each level taking the first period that
// contains now. Levels that have not been generated are synthesized on the
// fly. The walk stops when no period is active, at the Prana level, at a
// terminal node, or when a degenerate period cannot be subdivided.
func Resolve(roots []*domain.DashaNode, now time.Time) Resolution {
	var path []*domain.DashaNode
	level := roots
	for len(level) > 0 {
		match := FindActive(level, now)
		if match == nil {
			break
		}
		path = append(path, match)

		if match.Level >= domain.MaxLevel || match.IsTerminal() {
			break
		}
		if match.ChildState == domain.ChildrenMaterialized {
			level = match.Children
			continue
		}
		children, err := SubdivideNode(match)
		if err != nil {
			break
		}
		level = children
	}

	res := Resolution{Path: path}
	if d := res.Deepest(); d != nil {
		res.Progress = d.Progress(now)
	}
	return res
}

// FindActive returns the first node whose inclusive interval contains now.
// On a boundary shared by two siblings the earlier one wins.
func FindActive(nodes []*domain.DashaNode, now time.Time) *domain.DashaNode {
	for _, n := range nodes {
		if n.Contains(now) {
			return n
		}
	}
	return nil
}
