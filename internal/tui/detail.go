package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/r8deobf/internal/classindex"
)

// RenderClassDetail renders the selected class's original name, source
// file, and member list.
func RenderClassDetail(m *Model, width, height int) string {
	title := TitleStyle.Render("Detail")

	obfuscated, ok := m.selectedClass()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, title, MutedStyle.Render("no class selected"))
	}
	class, ok := m.idx.Class(obfuscated)
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, title, MutedStyle.Render("unknown class"))
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s -> %s", class.OriginalName, class.ObfuscatedName))
	if class.HasSourceFile {
		lines = append(lines, MutedStyle.Render("source: "+class.SourceFile))
	}
	lines = append(lines, "")

	lines = append(lines, renderMemberRows(class, width, height-len(lines)-2)...)

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
}

func renderMemberRows(class *classindex.Class, width, maxRows int) []string {
	names := make([]string, 0, len(class.Members))
	for name := range class.Members {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []string
	for _, name := range names {
		for _, mem := range class.Members[name] {
			rows = append(rows, renderMemberRow(name, mem, width))
			if maxRows > 0 && len(rows) >= maxRows {
				return rows
			}
		}
	}
	return rows
}

func renderMemberRow(obfuscatedMethod string, mem *classindex.Member, width int) string {
	rng := ""
	if mem.HasRange {
		rng = fmt.Sprintf(" [%d-%d]", mem.ObfStart, mem.ObfEnd)
	}

	signature := fmt.Sprintf("%s(%s)", mem.OriginalMethod, mem.Arguments)
	line := fmt.Sprintf("%s -> %s%s", TruncateString(signature, width-20), obfuscatedMethod, rng)

	var flags []string
	if mem.IsForeign {
		flags = append(flags, FormatMemberFlag("foreign"))
	}
	if mem.IsSynthesized {
		flags = append(flags, FormatMemberFlag("synthesized"))
	}
	if mem.IsOutline {
		flags = append(flags, FormatMemberFlag("outline"))
	}
	if len(flags) > 0 {
		line += " " + strings.Join(flags, " ")
	}

	return TextStyle.Render(line)
}
