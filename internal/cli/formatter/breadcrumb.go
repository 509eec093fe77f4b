package formatter

import (
	"strings"

	"github.com/alexanderramin/dasha/internal/domain"
)

// RenderBreadcrumb renders the drill-down trail with numbered hops, e.g.
// "0 Maha › 1 Venus › 2 Sun". The number is the key that jumps back to it.
func RenderBreadcrumb(crumbs []*domain.DashaNode) string {
	parts := make([]string, 0, len(crumbs)+1)
	parts = append(parts, Dim("0 ")+StyleFg.Render("Maha"))
	for i, c := range crumbs {
		parts = append(parts, Dim(string(rune('1'+i))+" ")+LordName(c.Lord))
	}
	return strings.Join(parts, Dim(" › "))
}

// RenderCompactBreadcrumb is RenderBreadcrumb with two-letter lord
// abbreviations, e.g. "0 Maha › 1 Ve › 2 Su", for narrow terminals.
func RenderCompactBreadcrumb(crumbs []*domain.DashaNode) string {
	parts := make([]string, 0, len(crumbs)+1)
	parts = append(parts, Dim("0 ")+StyleFg.Render("Maha"))
	for i, c := range crumbs {
		parts = append(parts, Dim(string(rune('1'+i))+" ")+LordColor(c.Lord).Render(c.Lord.Abbrev()))
	}
	return strings.Join(parts, Dim(" › "))
}
