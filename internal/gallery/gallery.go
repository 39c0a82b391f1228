package gallery

import "github.com/desertthunder/pictx/internal/models"

// Card is a single gallery entry.
type Card struct {
	Position int
	Photo    models.PhotoDescriptor
	revealed bool
}

// Revealed reports whether the card has completed its lazy reveal.
func (c *Card) Revealed() bool { return c.revealed }

// Gallery is the ordered list of rendered cards.
type Gallery struct {
	cards []*Card
}

// NewGallery creates a gallery pre-rendered with photos.
func NewGallery(photos ...models.PhotoDescriptor) *Gallery {
	g := &Gallery{}
	g.Append(photos...)
	return g
}

// Append adds a card per descriptor and returns the new cards.
func (g *Gallery) Append(photos ...models.PhotoDescriptor) []*Card {
	added := make([]*Card, 0, len(photos))
	for _, p := range photos {
		c := &Card{Position: len(g.cards), Photo: p}
		g.cards = append(g.cards, c)
		added = append(added, c)
	}
	return added
}

func (g *Gallery) Len() int { return len(g.cards) }

// Cards returns the cards in display order. The slice must not be modified.
func (g *Gallery) Cards() []*Card { return g.cards }

// Card returns the card at position i, or nil.
func (g *Gallery) Card(i int) *Card {
	if i < 0 || i >= len(g.cards) {
		return nil
	}
	return g.cards[i]
}

// Descriptors derives one descriptor per card in display order.
func (g *Gallery) Descriptors() []models.PhotoDescriptor {
	out := make([]models.PhotoDescriptor, len(g.cards))
	for i, c := range g.cards {
		out[i] = c.Photo
	}
	return out
}

// Rect is an axis-aligned box in logical pixels.
type Rect struct {
	X, Y, W, H int
}

// Intersect returns the overlapping box of r and o; a zero-area result means no overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Area() int { return r.W * r.H }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout positions cards on the page.
type Layout interface {
	Bounds(c *Card) Rect
	// Height is the total page height needed for n cards.
	Height(n int) int
}

// GridLayout places cards left to right in rows of fixed-size cells.
type GridLayout struct {
	Columns    int
	CardWidth  int
	CardHeight int
}

func (l GridLayout) columns() int {
	return max(l.Columns, 1)
}

func (l GridLayout) Bounds(c *Card) Rect {
	cols := l.columns()
	return Rect{
		X: (c.Position % cols) * l.CardWidth,
		Y: (c.Position / cols) * l.CardHeight,
		W: l.CardWidth,
		H: l.CardHeight,
	}
}

func (l GridLayout) Height(n int) int {
	cols := l.columns()
	return ((n + cols - 1) / cols) * l.CardHeight
}
