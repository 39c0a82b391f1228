package gallery

import "time"

const (
	DefaultRootMargin  = 100
	DefaultThreshold   = 0.01
	DefaultRevealDelay = 50 * time.Millisecond
)

// Registrar accepts newly created cards for lazy reveal.
type Registrar interface {
	Register(cards ...*Card)
}

// TrackerOpts configures a [Tracker]. Zero values select the defaults.
type TrackerOpts struct {
	RootMargin  int // extension of the viewport below its bottom edge
	Threshold   float64
	RevealDelay time.Duration
}

// Tracker observes unrevealed cards and reveals each one once it nears the viewport.
//
// Reveal is one-shot: a card leaves the observed set as soon as it is scheduled.
type Tracker struct {
	layout    Layout
	margin    int
	threshold float64
	delay     time.Duration
	observed  []*Card
}

var _ Registrar = (*Tracker)(nil)

// NewTracker creates a tracker measuring cards with layout.
func NewTracker(layout Layout, opts TrackerOpts) *Tracker {
	if opts.RootMargin == 0 {
		opts.RootMargin = DefaultRootMargin
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.RevealDelay == 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	return &Tracker{
		layout:    layout,
		margin:    opts.RootMargin,
		threshold: opts.Threshold,
		delay:     opts.RevealDelay,
	}
}

// SetLayout replaces the layout, e.g. after a resize.
func (t *Tracker) SetLayout(layout Layout) { t.layout = layout }

// Delay is the wait between a card being scheduled and revealed.
func (t *Tracker) Delay() time.Duration { return t.delay }

// Register starts observing cards that are not yet revealed.
func (t *Tracker) Register(cards ...*Card) {
	for _, c := range cards {
		if !c.revealed {
			t.observed = append(t.observed, c)
		}
	}
}

// Observed is the number of cards still waiting to intersect.
func (t *Tracker) Observed() int { return len(t.observed) }

// Scan unobserves and returns the cards intersecting viewport extended by the root margin.
// The caller reveals them with [Tracker.Reveal] after [Tracker.Delay].
func (t *Tracker) Scan(viewport Rect) []*Card {
	root := viewport
	root.H += t.margin

	var scheduled []*Card
	remaining := t.observed[:0]
	for _, c := range t.observed {
		if t.intersects(root, t.layout.Bounds(c)) {
			scheduled = append(scheduled, c)
			continue
		}
		remaining = append(remaining, c)
	}
	clear(t.observed[len(remaining):])
	t.observed = remaining

	return scheduled
}

func (t *Tracker) intersects(root, bounds Rect) bool {
	area := bounds.Area()
	if area == 0 {
		return false
	}
	overlap := root.Intersect(bounds).Area()
	return overlap > 0 && float64(overlap)/float64(area) >= t.threshold
}

// Reveal marks cards revealed.
func (t *Tracker) Reveal(cards ...*Card) {
	for _, c := range cards {
		c.revealed = true
	}
}
