package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title       lipgloss.Style
	ok          lipgloss.Style
	err         lipgloss.Style
	warn        lipgloss.Style
	help        lipgloss.Style
	card        lipgloss.Style
	selected    lipgloss.Style
	placeholder lipgloss.Style
	frame       lipgloss.Style
}

var _ Painter = (*Palette)(nil)

func NewPalette(t, s, e, w, h, border string) *Palette {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(cardCols - 2).
		Height(cardRows - 2)

	return &Palette{
		title:       NewBold(t).MarginBottom(1),
		ok:          NewBold(s),
		err:         NewBold(e),
		warn:        NewStyle(w),
		help:        NewEm(h),
		card:        card,
		selected:    card.BorderForeground(lipgloss.Color(t)),
		placeholder: card.Foreground(lipgloss.Color(h)),
		frame:       lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(t)),
	}
}

// DarkPalette is tuned for dark terminal backgrounds.
func DarkPalette() *Palette {
	return NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262", "#3C3C3C")
}

// LightPalette is tuned for light terminal backgrounds.
func LightPalette() *Palette {
	return NewPalette("#5A3FC0", "#027A4D", "#C00000", "#B36200", "#8A8A8A", "#C8C8C8")
}

// PaletteFor selects the palette for the theme preference.
func PaletteFor(dark bool) *Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
