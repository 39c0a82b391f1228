package gallery

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/models"
)

const (
	DefaultNarrowWidth  = 600
	DefaultHintDuration = 2 * time.Second

	// HintShownKey is the session flag recording that the navigation hint was displayed.
	HintShownKey = "viewer.hint_shown"
	closedIndex  = -1
)

// FlagStore reads and writes boolean preferences.
type FlagStore interface {
	Get(key string) (bool, error)
	Set(key string, value bool) error
}

// ViewerState is the observable state of the viewer. CurrentIndex is -1 while closed.
type ViewerState struct {
	IsOpen       bool
	CurrentIndex int
}

// ViewerOpts configures a [Viewer]. Zero values select the defaults.
type ViewerOpts struct {
	NarrowWidth  int
	HintDuration time.Duration
	Logger       *log.Logger
}

// Viewer is the full-screen photo state machine with states Closed and Open(i).
//
// Invalid transitions are no-ops and report false. Navigation never wraps.
type Viewer struct {
	index        *PhotoIndex
	session      FlagStore
	narrowWidth  int
	hintDuration time.Duration
	logger       *log.Logger

	width       int
	state       ViewerState
	hintVisible bool
}

// NewViewer creates a closed viewer over index. session holds per-session flags.
func NewViewer(index *PhotoIndex, session FlagStore, opts ViewerOpts) *Viewer {
	if opts.NarrowWidth == 0 {
		opts.NarrowWidth = DefaultNarrowWidth
	}
	if opts.HintDuration == 0 {
		opts.HintDuration = DefaultHintDuration
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Viewer{
		index:        index,
		session:      session,
		narrowWidth:  opts.NarrowWidth,
		hintDuration: opts.HintDuration,
		logger:       opts.Logger,
		state:        ViewerState{CurrentIndex: closedIndex},
	}
}

// SetViewportWidth records the viewport width in logical pixels.
func (v *Viewer) SetViewportWidth(px int) { v.width = px }

// Narrow reports whether touch navigation and the hint apply.
func (v *Viewer) Narrow() bool { return v.width > 0 && v.width <= v.narrowWidth }

func (v *Viewer) State() ViewerState { return v.state }

func (v *Viewer) IsOpen() bool { return v.state.IsOpen }

// Current returns the displayed descriptor.
func (v *Viewer) Current() (models.PhotoDescriptor, bool) {
	if !v.state.IsOpen {
		return models.PhotoDescriptor{}, false
	}
	return v.index.At(v.state.CurrentIndex)
}

// Len is the number of navigable photos.
func (v *Viewer) Len() int { return v.index.Len() }

// Open shows photo i. The first open of a session on a narrow viewport also shows the hint.
func (v *Viewer) Open(i int) bool {
	if i < 0 || i >= v.index.Len() {
		return false
	}

	v.state = ViewerState{IsOpen: true, CurrentIndex: i}
	v.maybeShowHint()
	return true
}

// OpenURL opens the photo whose full-resolution URL matches exactly.
func (v *Viewer) OpenURL(fullURL string) bool {
	i := v.index.IndexOf(fullURL)
	if i < 0 {
		v.logger.Debug("ignoring click on unknown photo", "full_url", fullURL)
		return false
	}
	return v.Open(i)
}

// Close returns to Closed.
func (v *Viewer) Close() bool {
	if !v.state.IsOpen {
		return false
	}
	v.state = ViewerState{CurrentIndex: closedIndex}
	v.hintVisible = false
	return true
}

// Follow keeps an open viewer on the photo at fullURL after the index is rebuilt.
// The viewer closes when that photo is no longer indexed.
func (v *Viewer) Follow(fullURL string) {
	if !v.state.IsOpen {
		return
	}
	i := v.index.IndexOf(fullURL)
	if i < 0 {
		v.logger.Debug("displayed photo left the index, closing viewer", "full_url", fullURL)
		v.Close()
		return
	}
	v.state.CurrentIndex = i
}

// Prev moves to i-1 unless already at the first photo.
func (v *Viewer) Prev() bool {
	if !v.state.IsOpen || v.state.CurrentIndex <= 0 {
		return false
	}
	v.state.CurrentIndex--
	return true
}

// Next moves to i+1 unless already at the last photo.
func (v *Viewer) Next() bool {
	if !v.state.IsOpen || v.state.CurrentIndex >= v.index.Len()-1 {
		return false
	}
	v.state.CurrentIndex++
	return true
}

// HintVisible reports whether the navigation hint is on screen.
func (v *Viewer) HintVisible() bool { return v.hintVisible }

// HintDuration is how long the hint stays before fading.
func (v *Viewer) HintDuration() time.Duration { return v.hintDuration }

// HideHint fades the hint out.
func (v *Viewer) HideHint() { v.hintVisible = false }

func (v *Viewer) maybeShowHint() {
	if !v.Narrow() {
		return
	}

	shown, err := v.session.Get(HintShownKey)
	if err != nil {
		v.logger.Debug("failed to read hint flag", "error", err)
		return
	}
	if shown {
		return
	}

	if err := v.session.Set(HintShownKey, true); err != nil {
		v.logger.Debug("failed to record hint flag", "error", err)
	}
	v.hintVisible = true
}
