package tui

import (
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/r8deobf/internal/classindex"
)

// RenderMemberCountChart draws a horizontal bar chart of member count
// per class for the top classes by member count, the same role
// ntcharts plays for GC-pause bars in the teacher's memory tab.
func RenderMemberCountChart(idx *classindex.Index, names []string, width, height int) string {
	if width < 10 || height < 3 {
		return ""
	}

	type count struct {
		name string
		n    int
	}
	counts := make([]count, 0, len(names))
	for _, name := range names {
		class, ok := idx.Class(name)
		if !ok {
			continue
		}
		n := 0
		for _, members := range class.Members {
			n += len(members)
		}
		counts = append(counts, count{name: name, n: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].n > counts[j].n })

	maxBars := height
	if maxBars > len(counts) {
		maxBars = len(counts)
	}
	if maxBars == 0 {
		return MutedStyle.Render("no classes to chart")
	}

	data := make([]barchart.BarData, 0, maxBars)
	for _, c := range counts[:maxBars] {
		data = append(data, barchart.BarData{
			Label: TruncateString(c.name, 12),
			Values: []barchart.BarValue{
				{Name: "members", Value: float64(c.n), Style: InfoStyle},
			},
		})
	}

	chart := barchart.New(width, height, barchart.WithHorizontalBars())
	chart.PushAll(data)
	chart.Draw()

	title := TitleStyle.Render("Members per Class")
	return lipgloss.JoinVertical(lipgloss.Left, title, chart.View())
}
