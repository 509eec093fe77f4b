package contract

import (
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
)

type NowRequest struct {
	// Now overrides the current instant; nil means time.Now.
	Now *time.Time
}

func NewNowRequest() NowRequest {
	return NowRequest{}
}

// NowResponse is the active path at At. Path is empty when At is outside
// the chart.
type NowResponse struct {
	At        time.Time
	Path      []PeriodView
	Progress  float64
	Remaining time.Duration
}

// Deepest returns the innermost active period, if any.
func (r *NowResponse) Deepest() (PeriodView, bool) {
	if len(r.Path) == 0 {
		return PeriodView{}, false
	}
	return r.Path[len(r.Path)-1], true
}

type TreeRequest struct {
	Now *time.Time
	// Depth is the number of levels shown, 1 being Mahadashas only.
	Depth int
}

func NewTreeRequest() TreeRequest {
	return TreeRequest{Depth: 2}
}

// TreeResponse holds an expanded copy of the chart. The chart itself is not
// modified by expansion.
type TreeResponse struct {
	At     time.Time
	Roots  []*domain.DashaNode
	Active []*domain.DashaNode
}

// IsActive reports whether n lies on the active path.
func (r *TreeResponse) IsActive(n *domain.DashaNode) bool {
	if int(n.Level) >= len(r.Active) {
		return false
	}
	a := r.Active[n.Level]
	return a.Lord == n.Lord && a.Start.Equal(n.Start) && a.End.Equal(n.End)
}
