// Package testutil provides dasha tree fixtures shared by package tests.
package testutil

import (
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NodeOption customizes a fixture node.
type NodeOption func(*domain.DashaNode)

func WithLevel(l domain.Level) NodeOption {
	return func(n *domain.DashaNode) {
		n.Level = l
	}
}

// WithChildren attaches children one level below the node and marks them
// materialized.
func WithChildren(children ...*domain.DashaNode) NodeOption {
	return func(n *domain.DashaNode) {
		for _, c := range children {
			c.Level = n.Level + 1
		}
		n.Children = children
		n.ChildState = domain.ChildrenMaterialized
	}
}

// WithNoChildren marks the node terminal.
func WithNoChildren() NodeOption {
	return func(n *domain.DashaNode) {
		n.Children = nil
		n.ChildState = domain.ChildrenNone
	}
}

func NewTestNode(lord domain.Lord, start, end time.Time, opts ...NodeOption) *domain.DashaNode {
	n := &domain.DashaNode{
		Lord:  lord,
		Start: start,
		End:   end,
		Level: domain.LevelMaha,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewMahaSequence builds count consecutive unmaterialized Mahadashas starting
// at start with lord, each lasting its full allotment of years.
func NewMahaSequence(start time.Time, lord domain.Lord, count int) []*domain.DashaNode {
	nodes := make([]*domain.DashaNode, 0, count)
	cursor := start
	l := lord
	for i := 0; i < count; i++ {
		end := cursor.Add(time.Duration(l.Years()) * domain.YearDuration)
		nodes = append(nodes, NewTestNode(l, cursor, end))
		cursor = end
		l = l.Next()
	}
	return nodes
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
