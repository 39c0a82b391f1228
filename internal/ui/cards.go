package ui

import (
	"path"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/pictx/internal/gallery"
)

const (
	cardCols   = 24
	cardRows   = 5
	pxPerCol   = 8
	pxPerRow   = 16
	headerRows = 1
	footerRows = 2
)

func colsToPx(n int) int { return n * pxPerCol }
func rowsToPx(n int) int { return n * pxPerRow }

// gridColumns is the number of cards per row that fit in width cells.
func gridColumns(width int) int {
	return max(1, width/cardCols)
}

// gridLayout measures cards in logical pixels for the tracker and the pagination trigger.
func gridLayout(width int) gallery.GridLayout {
	return gallery.GridLayout{
		Columns:    gridColumns(width),
		CardWidth:  colsToPx(cardCols),
		CardHeight: rowsToPx(cardRows),
	}
}

func displayTitle(title string) string {
	if title != "" {
		return title
	}
	return "Untitled"
}

func renderCard(p *Palette, c *gallery.Card, selected bool) string {
	style := p.card
	switch {
	case selected:
		style = p.selected
	case !c.Revealed():
		style = p.placeholder
	}

	if !c.Revealed() {
		return style.Render("·  ·  ·")
	}

	inner := cardCols - 4
	title := ansi.Truncate(displayTitle(c.Photo.Title), inner, "…")
	name := ansi.Truncate(path.Base(c.Photo.URL), inner, "…")
	return style.Render(title + "\n" + p.help.Render(name))
}

// renderGrid lays cards out left to right in rows of cols.
func renderGrid(p *Palette, cards []*gallery.Card, cols, cursor int) string {
	if len(cards) == 0 {
		return p.help.Render("No photos yet.")
	}

	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, renderCard(p, c, c.Position == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cardAt maps a content cell to a card position, or -1.
func cardAt(x, contentY, cols, n int) int {
	if x < 0 || contentY < 0 {
		return -1
	}
	col := x / cardCols
	if col >= cols {
		return -1
	}
	pos := (contentY/cardRows)*cols + col
	if pos >= n {
		return -1
	}
	return pos
}
