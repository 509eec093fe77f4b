package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/dasha/internal/cli/formatter"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/engine"
	"github.com/alexanderramin/dasha/internal/navigation"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type exploreKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Drill  key.Binding
	Back   key.Binding
	Crumb  key.Binding
	JumpTo key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newExploreKeyMap() exploreKeyMap {
	return exploreKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Drill:  key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "drill in")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace", "left", "h"), key.WithHelp("esc", "up a level")),
		Crumb:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4"), key.WithHelp("0-4", "breadcrumb")),
		JumpTo: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "now")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drill, k.Back, k.JumpTo, k.Help, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Drill, k.Back},
		{k.Crumb, k.JumpTo, k.Reset},
		{k.Help, k.Quit},
	}
}

// refreshMsg asks the explorer to re-resolve the active periods.
type refreshMsg time.Time

// exploreModel is the bubbletea model behind "dasha explore". All tree
// access goes through the Navigator.
type exploreModel struct {
	nav     *navigation.Navigator
	clock   func() time.Time
	layout  string
	refresh time.Duration

	now    time.Time
	active engine.Resolution
	cursor int
	notice string

	keys   exploreKeyMap
	help   help.Model
	width  int
	height int
}

func newExploreModel(nav *navigation.Navigator, clock func() time.Time, layout string, refresh time.Duration) *exploreModel {
	if clock == nil {
		clock = time.Now
	}
	if refresh <= 0 {
		refresh = time.Minute
	}
	m := &exploreModel{
		nav:     nav,
		clock:   clock,
		layout:  layout,
		refresh: refresh,
		keys:    newExploreKeyMap(),
		help:    help.New(),
	}
	m.resolve()
	m.cursor = m.activeIndex()
	return m
}

func (m *exploreModel) Init() tea.Cmd {
	return m.tick()
}

func (m *exploreModel) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m *exploreModel) resolve() {
	m.now = m.clock().UTC()
	m.active = m.nav.Current(m.now)
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		m.resolve()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := m.nav.CurrentLevelNodes()
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(nodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Drill):
		if m.cursor >= len(nodes) {
			return m, nil
		}
		if err := m.nav.DrillInto(nodes[m.cursor]); err != nil {
			m.notice = drillNotice(nodes[m.cursor], err)
			return m, nil
		}
		m.cursor = m.activeIndex()

	case key.Matches(msg, m.keys.Back):
		m.drillUpTo(m.nav.Depth() - 1)

	case key.Matches(msg, m.keys.Crumb):
		m.drillUpTo(int(msg.Runes[0] - '0'))

	case key.Matches(msg, m.keys.JumpTo):
		m.resolve()
		target := m.nav.JumpTo(m.now)
		if target == nil {
			m.notice = "No period of the chart covers " + formatter.FormatDate(m.now, m.layout) + "."
			return m, nil
		}
		m.cursor = max(0, slices.Index(m.nav.CurrentLevelNodes(), target))

	case key.Matches(msg, m.keys.Reset):
		m.nav.Reset()
		m.cursor = m.activeIndex()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// drillUpTo truncates the breadcrumbs and puts the cursor on the period the
// user came up from.
func (m *exploreModel) drillUpTo(index int) {
	if index < 0 {
		return
	}
	crumbs := m.nav.Breadcrumbs()
	if err := m.nav.DrillUpTo(index); err != nil {
		m.notice = fmt.Sprintf("No breadcrumb %d: only %d levels deep.", index, len(crumbs))
		return
	}
	if index < len(crumbs) {
		m.cursor = max(0, slices.Index(m.nav.CurrentLevelNodes(), crumbs[index]))
	}
}

// activeIndex is the position of the active period in the current level,
// or 0 when none of it is active.
func (m *exploreModel) activeIndex() int {
	for i, n := range m.nav.CurrentLevelNodes() {
		if m.active.Includes(n) {
			return i
		}
	}
	return 0
}

func drillNotice(n *domain.DashaNode, err error) string {
	switch {
	case errors.Is(err, domain.ErrMaxDepthExceeded):
		return "Prana is the deepest level."
	case errors.Is(err, domain.ErrNotDrillable):
		return fmt.Sprintf("%s has no sub-periods in this chart.", n.Lord)
	case errors.Is(err, domain.ErrDegenerateInterval):
		return fmt.Sprintf("%s has zero length and cannot be subdivided.", n.Lord)
	default:
		return err.Error()
	}
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("DASHA EXPLORER"))
	b.WriteString(formatter.Dim("  " + formatter.FormatDate(m.now, m.layout)))
	b.WriteString("\n")
	badge := formatter.LevelBadge(domain.LevelForDepth(m.nav.Depth()))
	crumbs := formatter.RenderBreadcrumb(m.nav.Breadcrumbs())
	if m.width > 0 && lipgloss.Width(crumbs)+2+lipgloss.Width(badge) > m.width {
		crumbs = formatter.RenderCompactBreadcrumb(m.nav.Breadcrumbs())
	}
	b.WriteString(crumbs)
	b.WriteString("  ")
	b.WriteString(badge)
	b.WriteString("\n\n")

	for i, n := range m.nav.CurrentLevelNodes() {
		b.WriteString(m.renderRow(i, n))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n" + formatter.RenderBox("", formatter.StyleYellow.Render(m.notice)) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *exploreModel) renderRow(i int, n *domain.DashaNode) string {
	pointer := "  "
	if i == m.cursor {
		pointer = formatter.StyleHeader.Render("> ")
	}

	lord := fmt.Sprintf("%-8s", n.Lord.String())
	span := fmt.Sprintf("%s → %s  %s",
		formatter.FormatDate(n.Start, m.layout), formatter.FormatDate(n.End, m.layout), formatter.FormatSpan(n.Duration()))

	if m.active.Includes(n) {
		return pointer + formatter.StyleYellowBold.Render("▶ "+lord) + " " + span + "  " +
			formatter.RenderCompactBar(n.Progress(m.now), 12)
	}
	return pointer + "  " + formatter.LordColor(n.Lord).Render(lord) + " " + formatter.Dim(span)
}
