package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// menuLoadedMsg signals that the menu tree has been built.
type menuLoadedMsg struct {
	forest []*tree.Node[domain.MenuItem]
	err    error
}

type browserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Filter   key.Binding
	Quit     key.Binding
}

var browserKeys = browserKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
	Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Filter, k.Quit}
}

// browserRow is one line of the pre-order listing.
type browserRow struct {
	item        domain.MenuItem
	depth       int
	hasChildren bool
	collapsed   bool
	matched     []int
}

// menuBrowserView shows a menu tree with a movable cursor. Branches can be
// collapsed, and "/" narrows the list to fuzzy title matches.
type menuBrowserView struct {
	ctx     context.Context
	app     *App
	menu    *domain.Menu
	forest  []*tree.Node[domain.MenuItem]
	rows    []browserRow
	loading bool
	err     error
	cursor  int

	collapsedNodes map[string]bool

	filtering bool
	filter    string
}

func newMenuBrowserView(ctx context.Context, app *App, menu *domain.Menu) *menuBrowserView {
	return &menuBrowserView{
		ctx:            ctx,
		app:            app,
		menu:           menu,
		loading:        true,
		collapsedNodes: make(map[string]bool),
	}
}

func runMenuBrowser(ctx context.Context, app *App, menu *domain.Menu) error {
	_, err := tea.NewProgram(newMenuBrowserView(ctx, app, menu), tea.WithContext(ctx)).Run()
	return err
}

func (v *menuBrowserView) Init() tea.Cmd {
	return v.loadMenu()
}

func (v *menuBrowserView) loadMenu() tea.Cmd {
	ctx, app, menuID := v.ctx, v.app, v.menu.ID
	return func() tea.Msg {
		forest, err := app.Menus.Tree(ctx, menuID)
		return menuLoadedMsg{forest: forest, err: err}
	}
}

func (v *menuBrowserView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case menuLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.forest = msg.forest
		v.rows = v.allRows()
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *menuBrowserView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleRows()

	switch {
	case msg.Type == tea.KeyEsc && v.filter != "":
		v.filter = ""
		v.cursor = 0
	case key.Matches(msg, browserKeys.Quit):
		return v, tea.Quit
	case key.Matches(msg, browserKeys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, browserKeys.Down):
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case key.Matches(msg, browserKeys.Toggle):
		if row, ok := v.rowAtCursor(visible); ok && row.hasChildren {
			v.collapsedNodes[row.item.ID] = !v.collapsedNodes[row.item.ID]
		}
	case key.Matches(msg, browserKeys.Collapse):
		if row, ok := v.rowAtCursor(visible); ok && row.hasChildren {
			v.collapsedNodes[row.item.ID] = true
		}
	case key.Matches(msg, browserKeys.Expand):
		if row, ok := v.rowAtCursor(visible); ok {
			delete(v.collapsedNodes, row.item.ID)
		}
	case key.Matches(msg, browserKeys.Filter):
		v.filtering = true
		v.filter = ""
		v.cursor = 0
	}
	return v, nil
}

func (v *menuBrowserView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			r := []rune(v.filter)
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeySpace:
		v.filter += " "
		v.cursor = 0
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	}
	return v, nil
}

func (v *menuBrowserView) rowAtCursor(visible []browserRow) (browserRow, bool) {
	if v.cursor < 0 || v.cursor >= len(visible) {
		return browserRow{}, false
	}
	return visible[v.cursor], true
}

// allRows lists every reachable item in pre-order.
func (v *menuBrowserView) allRows() []browserRow {
	rows := make([]browserRow, 0)
	tree.Walk(v.forest, func(n *tree.Node[domain.MenuItem], depth int) bool {
		rows = append(rows, browserRow{item: n.Item, depth: depth, hasChildren: len(n.Children) > 0})
		return true
	})
	return rows
}

// rowTitles adapts rows to fuzzy.Source.
type rowTitles []browserRow

func (r rowTitles) String(i int) string { return r[i].item.Title }
func (r rowTitles) Len() int            { return len(r) }

func (v *menuBrowserView) visibleRows() []browserRow {
	if v.filter != "" {
		matches := fuzzy.FindFrom(v.filter, rowTitles(v.rows))
		out := make([]browserRow, 0, len(matches))
		for _, m := range matches {
			row := v.rows[m.Index]
			row.matched = m.MatchedIndexes
			row.depth = 0
			out = append(out, row)
		}
		return out
	}

	out := make([]browserRow, 0, len(v.rows))
	// Track collapsed ancestor depth for recursive hiding.
	collapsedDepth := -1
	for _, r := range v.rows {
		if collapsedDepth >= 0 {
			if r.depth > collapsedDepth {
				continue
			}
			collapsedDepth = -1
		}
		r.collapsed = v.collapsedNodes[r.item.ID]
		if r.collapsed {
			collapsedDepth = r.depth
		}
		out = append(out, r)
	}
	return out
}

func (v *menuBrowserView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading menu...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visibleRows()

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header(v.menu.Name) + "\n\n")

	if v.filtering || v.filter != "" {
		cursor := ""
		if v.filtering {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + cursor + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No items.") + "\n")
	}

	for i, row := range visible {
		pointer := "  "
		if i == v.cursor {
			pointer = formatter.StyleGreen.Render("▸ ")
		}

		marker := "  "
		if row.hasChildren && v.filter == "" {
			marker = formatter.Dim("▾ ")
			if row.collapsed {
				marker = formatter.Dim("▸ ")
			}
		}

		title := formatter.Highlight(row.item.Title, row.matched)
		if i == v.cursor {
			title = formatter.Bold(title)
		}

		b.WriteString(fmt.Sprintf("%s%s%s%s", pointer, strings.Repeat("  ", row.depth), marker, title))
		if badge := formatter.TargetBadge(row.item.Target); badge != "" {
			b.WriteString(" " + badge)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if row, ok := v.rowAtCursor(visible); ok {
		path := tree.Path(row.item.ID, v.forest)
		b.WriteString("  " + formatter.FormatBreadcrumbs(path, ""))
		if row.item.URL != "" {
			b.WriteString("  " + formatter.Dim(row.item.URL))
		}
		b.WriteString("\n")
	}
	b.WriteString("  " + v.renderHelp() + "\n")
	return b.String()
}

func (v *menuBrowserView) renderHelp() string {
	hints := make([]string, 0, len(browserKeys.ShortHelp()))
	for _, k := range browserKeys.ShortHelp() {
		h := k.Help()
		hints = append(hints, formatter.StyleHeader.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(hints, formatter.Dim(" · "))
}
