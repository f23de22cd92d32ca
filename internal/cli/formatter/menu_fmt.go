package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/tree"
)

// FormatMenuList renders all menus as a table.
func FormatMenuList(menus []*domain.Menu) string {
	if len(menus) == 0 {
		return Dim("No menus yet. Create one with: cmsdash menu create NAME --slug SLUG") + "\n"
	}
	rows := make([][]string, 0, len(menus))
	for _, m := range menus {
		rows = append(rows, []string{TruncID(m.ID), Bold(m.Name), m.Slug})
	}
	return RenderTable([]string{"ID", "NAME", "SLUG"}, rows)
}

// FormatMenuTree renders a menu header followed by its item tree.
func FormatMenuTree(m *domain.Menu, forest []*tree.Node[domain.MenuItem], locale string) string {
	var b strings.Builder
	b.WriteString(Header(m.Name) + "\n")
	if len(forest) == 0 {
		b.WriteString(Dim("(empty)") + "\n")
		return b.String()
	}
	b.WriteString(RenderTree(MenuTreeItems(forest, locale)))
	return b.String()
}

// FormatMenuFlat renders the pre-order listing with depth and order.
func FormatMenuFlat(entries []tree.Entry[domain.MenuItem], locale string) string {
	if len(entries) == 0 {
		return Dim("(empty)") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		title := strings.Repeat("  ", e.Depth) + e.Item.LocalizedTitle(locale)
		rows = append(rows, []string{
			TruncID(e.Item.ID),
			fmt.Sprintf("%d", e.Depth),
			fmt.Sprintf("%d", e.Item.Order),
			title,
			e.Item.URL,
		})
	}
	return RenderTable([]string{"ID", "DEPTH", "ORDER", "TITLE", "URL"}, rows)
}

// FormatBreadcrumbs joins a root-to-item path with a separator.
func FormatBreadcrumbs(path []domain.MenuItem, locale string) string {
	parts := make([]string, 0, len(path))
	for i, it := range path {
		title := it.LocalizedTitle(locale)
		if i == len(path)-1 {
			title = Bold(title)
		} else {
			title = Dim(title)
		}
		parts = append(parts, title)
	}
	return strings.Join(parts, Dim(" › "))
}

// FormatItemDetail renders one item as a box. path is empty for items
// that cannot be reached from the top of their menu.
func FormatItemDetail(item *domain.MenuItem, path []domain.MenuItem, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID     "), item.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("URL    "), CoalesceDash(item.URL))
	fmt.Fprintf(&b, "%s  %s\n", Dim("TARGET "), item.Target)
	fmt.Fprintf(&b, "%s  %d\n", Dim("ORDER  "), item.Order)
	if len(path) > 0 {
		fmt.Fprintf(&b, "%s  %d\n", Dim("DEPTH  "), len(path)-1)
		fmt.Fprintf(&b, "%s  %s\n", Dim("PATH   "), FormatBreadcrumbs(path, ""))
	} else {
		b.WriteString(Warn("unreachable: an ancestor is missing") + "\n")
	}
	for _, locale := range sortedKeys(item.Translations) {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-7s", strings.ToUpper(locale))), item.Translations[locale])
	}
	fmt.Fprintf(&b, "%s  %s", Dim("UPDATED"), HumanTimestamp(item.UpdatedAt, now))
	return RenderBox(item.Title, b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CoalesceDash returns s, or a dim placeholder when s is empty.
func CoalesceDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
