package contract

// ValidateResponse lists everything wrong with a chart. Issues are records
// that could not be converted; Problems are structural faults in the
// converted tree.
type ValidateResponse struct {
	Path        string
	PeriodCount int
	Issues      []error
	Problems    []error
}

// OK reports whether the chart is clean.
func (r *ValidateResponse) OK() bool {
	return len(r.Issues) == 0 && len(r.Problems) == 0
}
