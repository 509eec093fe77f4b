package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// rootPath prefixes issue locations for top-level records.
const rootPath = "periods"

// Options control how Convert treats imperfect input.
type Options struct {
	// SkipInvalid collects per-record issues and keeps going instead of
	// aborting on the first one.
	SkipInvalid bool
	// EmptyChildrenTerminal makes an explicitly empty children list mean
	// "no sub-periods exist". Otherwise it means "not generated yet".
	EmptyChildrenTerminal bool
}

// Issue locates a record that could not be placed on the timeline.
type Issue struct {
	Path string
	Err  error
}

func (i Issue) Error() string { return fmt.Sprintf("%s: %v", i.Path, i.Err) }

func (i Issue) Unwrap() error { return i.Err }

// Chart is a normalized dasha tree.
type Chart struct {
	Roots  []*domain.DashaNode
	Issues []Issue
}

// Convert normalizes backend records into a dasha tree. Siblings are folded
// left to right so a record without a start begins where the previous one
// ended; the first child of a period begins at the parent's start. A record
// that fails is dropped together with its descendants, and the next sibling
// can then only be placed if it carries an explicit start.
func Convert(records []PeriodRecord, opts Options) (*Chart, error) {
	c := &converter{opts: opts}
	roots, err := c.level(records, nil, nil, domain.LevelMaha, rootPath)
	if err != nil {
		return nil, err
	}
	return &Chart{Roots: roots, Issues: c.issues}, nil
}

type converter struct {
	opts   Options
	issues []Issue
}

// fail records an issue. In strict mode the issue is returned as the error.
func (c *converter) fail(path string, err error) error {
	issue := Issue{Path: path, Err: err}
	if !c.opts.SkipInvalid {
		return issue
	}
	c.issues = append(c.issues, issue)
	return nil
}

func (c *converter) level(
	records []PeriodRecord,
	parentStart *time.Time,
	parentLord *domain.Lord,
	level domain.Level,
	prefix string,
) ([]*domain.DashaNode, error) {
	nodes := make([]*domain.DashaNode, 0, len(records))
	chain := parentStart
	expected := parentLord

	for i, rec := range records {
		path := fmt.Sprintf("%s[%d]", prefix, i)

		lord, err := resolveLord(rec, expected)
		if err != nil {
			if ferr := c.fail(path, err); ferr != nil {
				return nil, ferr
			}
			chain, expected = nil, nil
			continue
		}

		span, err := Normalize(rec, chain)
		if err != nil {
			if ferr := c.fail(path, err); ferr != nil {
				return nil, ferr
			}
			chain, expected = nil, nil
			continue
		}

		node := &domain.DashaNode{
			Lord:  lord,
			Start: span.Start,
			End:   span.End,
			Level: level,
		}
		if err := c.attachChildren(node, rec, path); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		end := span.End
		next := lord.Next()
		chain, expected = &end, &next
	}
	return nodes, nil
}

func (c *converter) attachChildren(node *domain.DashaNode, rec PeriodRecord, path string) error {
	records, present := rec.children()

	switch {
	case node.Level >= domain.MaxLevel:
		node.ChildState = domain.ChildrenNone
		if len(records) > 0 {
			return c.fail(path+".children", domain.ErrMaxDepthExceeded)
		}
		return nil
	case !present:
		node.ChildState = domain.ChildrenUnmaterialized
		return nil
	case len(records) == 0:
		if c.opts.EmptyChildrenTerminal {
			node.ChildState = domain.ChildrenNone
		} else {
			node.ChildState = domain.ChildrenUnmaterialized
		}
		return nil
	}

	lord := node.Lord
	start := node.Start
	children, err := c.level(records, &start, &lord, node.Level+1, path+".children")
	if err != nil {
		return err
	}
	if len(children) == 0 {
		// Every listed sub-period was dropped; leave the level to be generated.
		node.ChildState = domain.ChildrenUnmaterialized
		return nil
	}
	node.Children = children
	node.ChildState = domain.ChildrenMaterialized
	return nil
}
