package formatter

import (
	"strings"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Detail string
	Badge  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders pre-ordered TreeItems as an indented tree using
// box-drawing connectors. Guides for an ancestor stop once that ancestor's
// last child has been drawn. Details are right-aligned in a dim column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, len(items))
	maxWidth := 0
	// open[l] reports whether the branch at level l still has siblings below.
	var open []bool

	for idx, item := range items {
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				if open[l] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		content := StyleDim.Render(prefix.String()) + item.Title
		if item.Badge != "" {
			content += " " + item.Badge
		}
		lines[idx] = content
		if w := lipgloss.Width(content); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for idx, line := range lines {
		detail := items[idx].Detail
		if detail == "" {
			b.WriteString(line + "\n")
			continue
		}
		pad := maxWidth - lipgloss.Width(line)
		b.WriteString(line + strings.Repeat(" ", pad) + "  " + StyleDim.Render(detail) + "\n")
	}
	return b.String()
}

// MenuTreeItems converts a built menu forest to TreeItems. Roots sit at
// level 0, so top-level entries have no connector.
func MenuTreeItems(forest []*tree.Node[domain.MenuItem], locale string) []TreeItem {
	items := make([]TreeItem, 0)
	var walk func(nodes []*tree.Node[domain.MenuItem], level int)
	walk = func(nodes []*tree.Node[domain.MenuItem], level int) {
		for i, n := range nodes {
			items = append(items, TreeItem{
				Title:  n.Item.LocalizedTitle(locale),
				Level:  level,
				IsLast: i == len(nodes)-1,
				Detail: n.Item.URL,
				Badge:  TargetBadge(n.Item.Target),
			})
			walk(n.Children, level+1)
		}
	}
	walk(forest, 0)
	return items
}
