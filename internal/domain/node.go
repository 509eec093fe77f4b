package domain

import (
	"strconv"
	"strings"
	"time"
)

// Level is the depth of a period in the dasha hierarchy.
type Level int

const (
	LevelMaha Level = iota
	LevelAntar
	LevelPratyantar
	LevelSookshma
	LevelPrana
)

// MaxLevel is the deepest level; Prana periods are never subdivided.
const MaxLevel = LevelPrana

var levelLabels = [...]string{"Maha", "Antar", "Pratyantar", "Sookshma", "Prana"}

// Label returns the short display name of the level.
func (l Level) Label() string {
	if l < LevelMaha || l > MaxLevel {
		return "Unknown"
	}
	return levelLabels[l]
}

func (l Level) String() string { return l.Label() }

// ParseLevel accepts a level label ("antar", "Pratyantar") or its depth
// ("0".."4").
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= int(LevelMaha) && n <= int(MaxLevel) {
			return Level(n), nil
		}
	} else {
		for i, label := range levelLabels {
			if strings.EqualFold(s, label) || strings.EqualFold(s, label+"dasha") {
				return Level(i), nil
			}
		}
	}
	return 0, &FieldError{Field: "level", Value: s, Err: ErrIndexOutOfRange}
}

// LevelForDepth maps a breadcrumb length to the level it displays.
func LevelForDepth(depth int) Level {
	return Level(depth)
}

// ChildState records what is known about a node's sub-periods.
type ChildState int

const (
	// ChildrenUnmaterialized means sub-periods have not been generated yet.
	ChildrenUnmaterialized ChildState = iota
	// ChildrenMaterialized means Children holds the sub-periods. An empty
	// Children slice in this state is terminal, like ChildrenNone.
	ChildrenMaterialized
	// ChildrenNone means the node is terminal and must not be subdivided.
	ChildrenNone
)

func (s ChildState) String() string {
	switch s {
	case ChildrenMaterialized:
		return "materialized"
	case ChildrenNone:
		return "none"
	default:
		return "unmaterialized"
	}
}

// DashaNode is one period of the hierarchy. A moment t is inside the period
// iff Start <= t <= End.
type DashaNode struct {
	Lord       Lord
	Start      time.Time
	End        time.Time
	Level      Level
	Children   []*DashaNode
	ChildState ChildState
}

// Duration returns End - Start.
func (n *DashaNode) Duration() time.Duration {
	return n.End.Sub(n.Start)
}

// Years returns the duration expressed in DaysPerYear years.
func (n *DashaNode) Years() float64 {
	return float64(n.Duration()) / float64(YearDuration)
}

// IsDegenerate reports whether End <= Start.
func (n *DashaNode) IsDegenerate() bool {
	return !n.End.After(n.Start)
}

// Contains reports whether t falls inside the period, boundaries included.
func (n *DashaNode) Contains(t time.Time) bool {
	return !t.Before(n.Start) && !t.After(n.End)
}

// HasChildren reports whether sub-periods are materialized and non-empty.
func (n *DashaNode) HasChildren() bool {
	return n.ChildState == ChildrenMaterialized && len(n.Children) > 0
}

// IsTerminal reports whether the node is known to have no sub-periods.
func (n *DashaNode) IsTerminal() bool {
	return n.ChildState == ChildrenNone ||
		(n.ChildState == ChildrenMaterialized && len(n.Children) == 0)
}

// Progress returns the elapsed percentage of the period at t, clamped to
// [0, 100]. Degenerate periods report 0.
func (n *DashaNode) Progress(t time.Time) float64 {
	if n.IsDegenerate() {
		return 0
	}
	pct := 100 * float64(t.Sub(n.Start)) / float64(n.Duration())
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Clone returns a deep copy of the node and its materialized descendants.
func (n *DashaNode) Clone() *DashaNode {
	c := *n
	if n.Children != nil {
		c.Children = make([]*DashaNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}
