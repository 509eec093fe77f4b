package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

// DefaultGapTolerance absorbs the one-day offset of backends that end a period
// on the day before the next one starts.
const DefaultGapTolerance = 24 * time.Hour

// ValidateTree checks the structural invariants of a converted tree and
// returns every violation found. Gaps and overhangs up to tolerance are
// accepted.
func ValidateTree(roots []*domain.DashaNode, tolerance time.Duration) []error {
	var errs []error
	validateSiblings(roots, nil, rootPath, tolerance, &errs)
	return errs
}

func validateSiblings(nodes []*domain.DashaNode, parent *domain.DashaNode, prefix string, tolerance time.Duration, errs *[]error) {
	for i, n := range nodes {
		path := fmt.Sprintf("%s[%d]", prefix, i)

		if n.IsDegenerate() {
			*errs = append(*errs, Issue{Path: path, Err: fmt.Errorf("%s %s ends %s, not after start %s: %w",
				n.Lord, n.Level.Label(), formatDate(n.End), formatDate(n.Start), domain.ErrDegenerateInterval)})
		}

		if parent != nil {
			if n.Start.Before(parent.Start.Add(-tolerance)) || n.End.After(parent.End.Add(tolerance)) {
				*errs = append(*errs, Issue{Path: path, Err: fmt.Errorf("%s %s..%s outside parent %s..%s: %w",
					n.Lord, formatDate(n.Start), formatDate(n.End),
					formatDate(parent.Start), formatDate(parent.End), domain.ErrOutOfParent)})
			}
		}

		if i > 0 {
			prev := nodes[i-1]
			switch {
			case n.Start.Before(prev.End.Add(-tolerance)):
				*errs = append(*errs, Issue{Path: path, Err: fmt.Errorf("%s starts %s before %s ends %s: %w",
					n.Lord, formatDate(n.Start), prev.Lord, formatDate(prev.End), domain.ErrOverlap)})
			case n.Start.After(prev.End.Add(tolerance)):
				*errs = append(*errs, Issue{Path: path, Err: fmt.Errorf("%s starts %s, %s after %s ends: %w",
					n.Lord, formatDate(n.Start), n.Start.Sub(prev.End), prev.Lord, domain.ErrGap)})
			}
		}

		if n.ChildState == domain.ChildrenMaterialized {
			validateSiblings(n.Children, n, path+".children", tolerance, errs)
		}
	}
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
