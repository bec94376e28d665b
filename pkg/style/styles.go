// Package style holds the lipgloss styles of the settings panel and the
// command listing.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	PrimaryColor = lipgloss.AdaptiveColor{
		Light: "#2E7D32", // Green
		Dark:  "#66BB6A",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#ADB5BD",
	}

	BorderColor = lipgloss.AdaptiveColor{
		Light: "#CED4DA",
		Dark:  "#3B4048",
	}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ControlStyle frames one settings control
	ControlStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginBottom(1)

	ValueStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// PlaceholderStyle shows a control's hint when it has no value
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Italic(true)
)
