package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mabhi256/r8deobf/internal/classindex"
	"github.com/mabhi256/r8deobf/utils"
)

func initialModel(idx *classindex.Index) *Model {
	names := idx.SortedObfuscatedNames()

	filter := textinput.New()
	filter.Placeholder = "filter classes..."
	filter.Focus()
	filter.CharLimit = 256
	filter.Prompt = "/ "

	m := &Model{
		idx:        idx,
		names:      names,
		currentTab: BrowseTab,
		filter:     filter,
		keys:       DefaultKeyMap(),
	}
	m.refreshMatches()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.currentTab = BrowseTab
			return m, nil
		case "2":
			m.currentTab = DashboardTab
			return m, nil
		case "tab":
			m.currentTab = utils.GetNextEnum(m.currentTab, DashboardTab)
			return m, nil
		}

		if m.currentTab == BrowseTab {
			return m.handleBrowseKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshMatches()
	return m, cmd
}

// refreshMatches re-runs the fuzzy filter over m.names and clamps the
// cursor back onto the result list.
func (m *Model) refreshMatches() {
	query := m.filter.Value()
	if query == "" {
		m.matches = nil
		m.cursor = 0
		return
	}
	m.matches = fuzzy.Find(query, m.names)
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

// selectedClass returns the obfuscated name currently under the cursor,
// falling back to the unfiltered full list when the filter is empty.
func (m *Model) selectedClass() (string, bool) {
	if m.filter.Value() == "" {
		if len(m.names) == 0 {
			return "", false
		}
		if m.cursor >= len(m.names) {
			return m.names[0], true
		}
		return m.names[m.cursor], true
	}
	if m.cursor >= len(m.matches) {
		return "", false
	}
	return m.matches[m.cursor].Str, true
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.currentTab {
	case BrowseTab:
		content = m.renderBrowse()
	case DashboardTab:
		content = RenderDashboard(m.idx, m.names, m.width, m.height-6)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content)
}

func (m *Model) renderBrowse() string {
	listWidth := m.width/3 - 1
	detailWidth := m.width - listWidth - 3

	left := RenderClassList(m, listWidth, m.height-8)
	right := RenderClassDetail(m, detailWidth, m.height-8)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.filter.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
	)
}

func (m *Model) renderHeader() string {
	tabNames := []string{"Browse", "Dashboard"}

	var tabs []string
	for i, name := range tabNames {
		style := TabInactiveStyle
		indicator := " "
		if TabType(i) == m.currentTab {
			style = TabActiveStyle
			indicator = "●"
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%s %s [%d]", indicator, name, i+1)))
	}

	tabLine := strings.Join(tabs, "  ")
	border := strings.Repeat("─", max(m.width, 0))

	return lipgloss.JoinVertical(lipgloss.Left, tabLine, border)
}

// StartTUI launches the mapping browser over idx.
func StartTUI(idx *classindex.Index) error {
	model := initialModel(idx)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
