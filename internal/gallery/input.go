package gallery

// Key is a platform-neutral key press understood by the viewer.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyEscape
)

// DefaultSwipeThreshold is the horizontal drag distance, in logical pixels, that counts as a swipe.
const DefaultSwipeThreshold = 50

// InputAdapter translates raw pointer, keyboard and touch input into [Viewer] transitions.
//
// Every method reports whether a transition happened.
type InputAdapter struct {
	viewer    *Viewer
	threshold int

	dragging   bool
	dragStartX int
}

// NewInputAdapter creates an adapter in front of viewer. A zero threshold selects the default.
func NewInputAdapter(viewer *Viewer, swipeThreshold int) *InputAdapter {
	if swipeThreshold == 0 {
		swipeThreshold = DefaultSwipeThreshold
	}
	return &InputAdapter{viewer: viewer, threshold: swipeThreshold}
}

// ThumbnailClick opens the clicked card's photo. Unknown URLs are ignored.
func (a *InputAdapter) ThumbnailClick(fullURL string) bool {
	return a.viewer.OpenURL(fullURL)
}

// BackgroundClick closes the viewer when the click lands outside the image.
func (a *InputAdapter) BackgroundClick() bool {
	return a.viewer.Close()
}

// KeyPress maps ←/→/esc to Prev/Next/Close while open.
func (a *InputAdapter) KeyPress(k Key) bool {
	if !a.viewer.IsOpen() {
		return false
	}
	switch k {
	case KeyLeft:
		return a.viewer.Prev()
	case KeyRight:
		return a.viewer.Next()
	case KeyEscape:
		return a.viewer.Close()
	}
	return false
}

// TouchStart records the start of a horizontal drag.
func (a *InputAdapter) TouchStart(x int) {
	a.dragging = true
	a.dragStartX = x
}

// TouchEnd finishes a drag at x. On narrow viewports a drag longer than the threshold moves
// to the previous photo when dragged right and to the next when dragged left.
func (a *InputAdapter) TouchEnd(x int) bool {
	if !a.dragging {
		return false
	}
	a.dragging = false

	if !a.viewer.IsOpen() || !a.viewer.Narrow() {
		return false
	}

	dx := x - a.dragStartX
	switch {
	case dx > a.threshold:
		return a.viewer.Prev()
	case dx < -a.threshold:
		return a.viewer.Next()
	}
	return false
}

// Swiped reports whether a drag from startX to endX exceeds the swipe threshold.
func (a *InputAdapter) Swiped(startX, endX int) bool {
	dx := endX - startX
	return dx > a.threshold || dx < -a.threshold
}

// ImageTap navigates on narrow viewports: the left half of image goes back, the right half forward.
func (a *InputAdapter) ImageTap(x int, image Rect) bool {
	if !a.viewer.IsOpen() || !a.viewer.Narrow() {
		return false
	}
	if x < image.X+image.W/2 {
		return a.viewer.Prev()
	}
	return a.viewer.Next()
}
