// Package style renders the command output of multitag.
package style

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors used by the command output.
type Palette struct {
	// Accent colors, blended across headers
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	FgBase  lipgloss.Color // Field values
	FgMuted lipgloss.Color // Field labels
	Border  lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
}

var defaultPalette = Palette{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:  lipgloss.Color("#c0c0c0"),
	FgMuted: lipgloss.Color("#808080"),
	Border:  lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// Styles holds the pre-built styles of one output.
type Styles struct {
	Label   lipgloss.Style
	Value   lipgloss.Style
	Missing lipgloss.Style
	Panel   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	palette Palette
	color   bool
}

// New returns the output styles. Without color every style renders its input
// unchanged.
func New(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Label:   plain,
			Value:   plain,
			Missing: plain,
			Panel:   plain,
			Success: plain,
			Error:   plain,
			Warning: plain,
		}
	}

	p := defaultPalette
	return &Styles{
		Label:   lipgloss.NewStyle().Foreground(p.FgMuted),
		Value:   lipgloss.NewStyle().Foreground(p.FgBase),
		Missing: lipgloss.NewStyle().Foreground(p.FgMuted).Italic(true),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		palette: p,
		color:   true,
	}
}

// Color reports whether the styles emit colors.
func (s *Styles) Color() bool {
	return s.color
}

// Header renders a bold header, blended from the primary to the secondary
// color when colors are enabled.
func (s *Styles) Header(text string) string {
	if !s.color {
		return text
	}
	return applyBoldGradient(text, s.palette.Primary, s.palette.Secondary)
}
