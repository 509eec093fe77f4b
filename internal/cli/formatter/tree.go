package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display. Ancestors records, for every
// enclosing level, whether that ancestor was the last of its siblings.
type TreeItem struct {
	Title     string
	Ancestors []bool
	IsLast    bool
	Active    bool
	Detail    string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree using box-drawing connectors.
// Top-level items (no ancestors) get no connector. Active items get an amber
// ▶ marker and details are right-aligned as badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix strings.Builder
		if len(item.Ancestors) > 0 {
			for _, last := range item.Ancestors[1:] {
				if last {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Active {
			title = StyleYellowBold.Render("▶ ") + StyleYellowBold.Render(title)
		}
		contents[i] = prefix.String() + title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
