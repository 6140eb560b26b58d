package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderClassList renders the scrollable, fuzzy-filtered list of
// obfuscated class names.
func RenderClassList(m *Model, width, height int) string {
	title := TitleStyle.Render("Classes")

	names, labels := visibleRows(m)
	if len(names) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, MutedStyle.Render("no matches"))
	}

	start, end := scrollWindow(m.cursor, len(names), height)

	var rows []string
	for i := start; i < end; i++ {
		marker := "  "
		if i == m.cursor {
			marker = SelectedRowStyle.Render("›") + " "
		}
		rows = append(rows, marker+labels[i])
	}

	list := lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, title, list)
}

// visibleRows returns the obfuscated names currently shown (filtered or
// full list) alongside their rendered labels, with fuzzy matches
// highlighted.
func visibleRows(m *Model) (names []string, labels []string) {
	if m.filter.Value() == "" {
		for _, name := range m.names {
			names = append(names, name)
			labels = append(labels, renderClassLabel(m, name, nil))
		}
		return names, labels
	}

	for _, match := range m.matches {
		names = append(names, match.Str)
		labels = append(labels, renderClassLabel(m, match.Str, match.MatchedIndexes))
	}
	return names, labels
}

func renderClassLabel(m *Model, obfuscated string, matched []int) string {
	base := TextStyle
	label := HighlightMatched(obfuscated, matched, base)

	if class, ok := m.idx.Class(obfuscated); ok && class.OriginalName != obfuscated {
		label += MutedStyle.Render(" -> " + class.OriginalName)
	}
	return label
}

func scrollWindow(cursor, total, height int) (start, end int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}
