// Package navigation implements interactive drill-down over a dasha tree.
//
// A Navigator keeps a breadcrumb stack from the Mahadasha level down to the
// level being displayed. Sub-periods that the chart backend did not provide
// are generated when the user first drills into a period and are kept on the
// tree from then on. The Navigator is the only place that mutates a tree after
// import; it is not safe for concurrent use.
package navigation

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/engine"
	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/google/uuid"
)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for navigation events.
func WithLogger(l *logger.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// WithMemoize makes Current attach the sub-periods it synthesizes along the
// active path to the tree.
func WithMemoize(enabled bool) Option {
	return func(n *Navigator) { n.memoize = enabled }
}

// Navigator is one drill-down session over a tree.
type Navigator struct {
	id      string
	roots   []*domain.DashaNode
	path    []*domain.DashaNode
	memoize bool
	log     *logger.Logger
}

// New starts a session at the Mahadasha level.
func New(roots []*domain.DashaNode, opts ...Option) *Navigator {
	n := &Navigator{
		id:    uuid.NewString(),
		roots: roots,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With("session", n.id)
	return n
}

// SessionID identifies the session in logs.
func (n *Navigator) SessionID() string { return n.id }

// Roots returns the Mahadasha periods.
func (n *Navigator) Roots() []*domain.DashaNode { return n.roots }

// Depth is the number of breadcrumbs.
func (n *Navigator) Depth() int { return len(n.path) }

// Breadcrumbs returns a copy of the breadcrumb stack.
func (n *Navigator) Breadcrumbs() []*domain.DashaNode {
	return slices.Clone(n.path)
}

// LevelLabel names the level currently displayed.
func (n *Navigator) LevelLabel() string {
	return domain.LevelForDepth(len(n.path)).Label()
}

// CurrentLevelNodes returns the periods displayed at the current level.
func (n *Navigator) CurrentLevelNodes() []*domain.DashaNode {
	if len(n.path) == 0 {
		return n.roots
	}
	return n.path[len(n.path)-1].Children
}

// CanDrill reports whether DrillInto(node) would succeed.
func (n *Navigator) CanDrill(node *domain.DashaNode) bool {
	if node == nil || !slices.Contains(n.CurrentLevelNodes(), node) {
		return false
	}
	if node.HasChildren() {
		return true
	}
	return drillable(node) == nil
}

// DrillInto descends into node, generating its sub-periods first if needed.
// On error the session is left unchanged.
func (n *Navigator) DrillInto(node *domain.DashaNode) error {
	if node == nil || !slices.Contains(n.CurrentLevelNodes(), node) {
		return domain.ErrNodeNotInLevel
	}
	if !node.HasChildren() {
		if err := drillable(node); err != nil {
			n.log.Debug("drill refused", "lord", node.Lord.String(), "level", node.Level.Label(), "error", err)
			return err
		}
		children, err := engine.SubdivideNode(node)
		if err != nil {
			return err
		}
		n.materialize(node, children)
	}
	n.path = append(n.path, node)
	n.log.Debug("drilled", "lord", node.Lord.String(), "depth", len(n.path), "level", n.LevelLabel())
	return nil
}

// DrillUpTo truncates the breadcrumbs to index entries; 0 returns to the
// Mahadasha level.
func (n *Navigator) DrillUpTo(index int) error {
	if index < 0 || index > len(n.path) {
		return fmt.Errorf("drill up to %d with %d breadcrumbs: %w", index, len(n.path), domain.ErrIndexOutOfRange)
	}
	n.path = n.path[:index]
	return nil
}

// Reset returns to the Mahadasha level.
func (n *Navigator) Reset() {
	n.path = n.path[:0]
}

// Current resolves the active path at now. With memoization enabled the
// synthesized levels are attached to the tree, so later drilling and
// resolution reuse the same nodes.
func (n *Navigator) Current(now time.Time) engine.Resolution {
	res := engine.Resolve(n.roots, now)
	if !n.memoize {
		return res
	}
	for i := 0; i+1 < len(res.Path); i++ {
		parent, child := res.Path[i], res.Path[i+1]
		if parent.ChildState == domain.ChildrenUnmaterialized {
			// child's siblings were synthesized in the same Subdivide call
			siblings, err := engine.SubdivideNode(parent)
			if err != nil {
				break
			}
			idx := slices.IndexFunc(siblings, func(s *domain.DashaNode) bool {
				return s.Lord == child.Lord && s.Start.Equal(child.Start)
			})
			if idx < 0 {
				break
			}
			siblings[idx] = child
			n.materialize(parent, siblings)
		}
	}
	return res
}

// JumpTo points the breadcrumbs at the active path so the displayed level
// contains the deepest active period. It returns that period, or nil when
// nothing is active and the session is unchanged.
func (n *Navigator) JumpTo(now time.Time) *domain.DashaNode {
	prev := slices.Clone(n.path)
	n.path = n.path[:0]

	level := n.roots
	var target *domain.DashaNode
	for {
		active := engine.FindActive(level, now)
		if active == nil {
			break
		}
		target = active
		if !n.CanDrill(active) || n.DrillInto(active) != nil {
			break
		}
		level = active.Children
	}
	if target == nil {
		n.path = prev
		return nil
	}
	// Step back up so the deepest active period is listed, not entered.
	if len(n.path) > 0 && n.path[len(n.path)-1] == target {
		n.path = n.path[:len(n.path)-1]
	}
	return target
}

// materialize is the single write path for attaching sub-periods to a node.
// The slice is replaced, never appended to.
func (n *Navigator) materialize(node *domain.DashaNode, children []*domain.DashaNode) {
	node.Children = children
	node.ChildState = domain.ChildrenMaterialized
	n.log.Debug("materialized sub-periods", "lord", node.Lord.String(), "level", node.Level.Label(), "count", len(children))
}

func drillable(node *domain.DashaNode) error {
	switch {
	case node.Level >= domain.MaxLevel:
		return domain.ErrMaxDepthExceeded
	case node.IsTerminal():
		return domain.ErrNotDrillable
	case node.IsDegenerate():
		return domain.ErrDegenerateInterval
	}
	return nil
}
