package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/r8deobf/internal/classindex"
)

// RenderDashboard renders the mapping-overview tab: summary counts on
// the left, a member-count-per-class chart on the right.
func RenderDashboard(idx *classindex.Index, names []string, width, height int) string {
	if idx == nil {
		return "Loading mapping..."
	}

	leftWidth := width/2 - 2
	rightWidth := width - leftWidth - 4

	leftColumn := renderDashboardSummary(idx, names, leftWidth)
	rightColumn := RenderMemberCountChart(idx, names, rightWidth, height-2)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		"  ",
		rightColumn,
	)
}

func renderDashboardSummary(idx *classindex.Index, names []string, width int) string {
	title := TitleStyle.Render("Mapping Summary")

	var totalMembers, withSourceFile, synthesized, outlines, foreign int
	for _, name := range names {
		class, ok := idx.Class(name)
		if !ok {
			continue
		}
		if class.HasSourceFile {
			withSourceFile++
		}
		for _, members := range class.Members {
			for _, m := range members {
				totalMembers++
				if m.IsSynthesized {
					synthesized++
				}
				if m.IsOutline {
					outlines++
				}
				if m.IsForeign {
					foreign++
				}
			}
		}
	}

	lines := []string{
		fmt.Sprintf("• Classes: %d", len(names)),
		fmt.Sprintf("• Members: %d", totalMembers),
		fmt.Sprintf("• With source file: %d", withSourceFile),
		fmt.Sprintf("• Synthesized: %s", GetMemberFlagStyle("synthesized").Render(fmt.Sprintf("%d", synthesized))),
		fmt.Sprintf("• Outline targets: %s", GetMemberFlagStyle("outline").Render(fmt.Sprintf("%d", outlines))),
		fmt.Sprintf("• Inlined (foreign) frames: %s", GetMemberFlagStyle("foreign").Render(fmt.Sprintf("%d", foreign))),
	}

	breakdown := CreateHorizontalBarChart("", []BarData{
		{Label: "synthesized", Value: float64(synthesized), Percentage: safePct(synthesized, totalMembers), Style: GetMemberFlagStyle("synthesized")},
		{Label: "outline", Value: float64(outlines), Percentage: safePct(outlines, totalMembers), Style: GetMemberFlagStyle("outline")},
		{Label: "inlined", Value: float64(foreign), Percentage: safePct(foreign, totalMembers), Style: GetMemberFlagStyle("foreign")},
	}, DefaultBarConfig(max(width-30, 10)))

	content := strings.Join(lines, "\n") + "\n\n" + breakdown

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func safePct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
