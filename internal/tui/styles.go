package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	CriticalColor = lipgloss.Color("#CC3333") // Dark red
	WarningColor  = lipgloss.Color("#FF8800") // Orange
	GoodColor     = lipgloss.Color("#228B22") // Forest green
	InfoColor     = lipgloss.Color("#4682B4") // Steel blue
	TextColor     = lipgloss.Color("#CCCCCC") // Light gray
	MutedColor    = lipgloss.Color("#888888") // Medium gray
	BorderColor   = lipgloss.Color("#666666") // Dark gray

	MatchColor = lipgloss.Color("#FFD700") // Gold, for fuzzy-matched characters
)

var (
	CriticalStyle = lipgloss.NewStyle().Foreground(CriticalColor).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	GoodStyle     = lipgloss.NewStyle().Foreground(GoodColor).Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(InfoColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	TextStyle     = lipgloss.NewStyle().Foreground(TextColor)
	MatchStyle    = lipgloss.NewStyle().Foreground(MatchColor).Bold(true)
)

var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(InfoColor).
			Padding(0, 1).
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(BorderColor).
				Bold(true)
)

var (
	HelpBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Background(lipgloss.Color("#1a1a1a")).
		Width(0). // set dynamically
		Padding(0, 1)
)

// GetMemberFlagStyle colors a member's R8 annotation flag the way
// GetSeverityStyle colors a GC issue's severity in the teacher's
// dashboard: outline targets draw attention, synthesized members are
// informational, foreign (inlined) frames are muted.
func GetMemberFlagStyle(flag string) lipgloss.Style {
	switch strings.ToLower(flag) {
	case "outline":
		return WarningStyle
	case "synthesized":
		return InfoStyle
	case "foreign":
		return MutedStyle
	default:
		return TextStyle
	}
}

// FormatMemberFlag renders a short, colored badge for a member flag.
func FormatMemberFlag(flag string) string {
	switch strings.ToLower(flag) {
	case "outline":
		return GetMemberFlagStyle(flag).Render("[outline]")
	case "synthesized":
		return GetMemberFlagStyle(flag).Render("[synthetic]")
	case "foreign":
		return GetMemberFlagStyle(flag).Render("[inlined]")
	default:
		return ""
	}
}

// TruncateString truncates a string to fit within maxWidth.
func TruncateString(s string, maxWidth int) string {
	if len(s) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return strings.Repeat(".", maxWidth)
	}
	return s[:maxWidth-3] + "..."
}

// PadRight pads a string to the right to reach the specified width.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// HighlightMatched renders s with the rune positions in matched bolded
// in MatchStyle, the remainder in base.
func HighlightMatched(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if set[i] {
			b.WriteString(MatchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
