package ui

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/pictx/internal/gallery"
	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
	tu "github.com/desertthunder/pictx/internal/testing"
)

type testHarness struct {
	m      *Model
	svc    *tu.MockService
	prefs  *tu.MemoryFlags
	opened []string
	copied []string
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds every message produced by cmd back into the model until no commands remain.
func (h *testHarness) drive(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		_, next := h.m.Update(msg)
		h.drive(next)
	}
}

func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) []tea.MouseMsg {
	return []tea.MouseMsg{
		{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
	}
}

func newHarness(t *testing.T, svc *tu.MockService, width int) *testHarness {
	t.Helper()

	h := &testHarness{svc: svc, prefs: &tu.MemoryFlags{}}
	session := gallery.NewSession(svc, gallery.Options{})
	h.m = NewModel(context.Background(), session, Options{
		BaseURL:     "http://example.com",
		Preferences: h.prefs,
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
		CopyURL: func(u string) error {
			h.copied = append(h.copied, u)
			return nil
		},
	})

	h.drive(h.send(tea.WindowSizeMsg{Width: width, Height: 30}))
	h.drive(h.m.Init())
	return h
}

func TestModel(t *testing.T) {
	first := tu.Photos("p1", 3)

	t.Run("loads first page and index", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), Listing: tu.Photos("all", 10)}, 100)

		if h.m.view != GalleryView {
			t.Fatalf("expected GalleryView, got %d", h.m.view)
		}
		if h.m.session.Gallery.Len() != 3 {
			t.Errorf("expected 3 cards, got %d", h.m.session.Gallery.Len())
		}
		if !h.m.indexed || h.m.source != gallery.SourceBulk || h.m.session.Index.Len() != 10 {
			t.Errorf("unexpected index state: indexed=%v source=%v len=%d", h.m.indexed, h.m.source, h.m.session.Index.Len())
		}
		for _, c := range h.m.session.Gallery.Cards() {
			if !c.Revealed() {
				t.Errorf("card %d not revealed", c.Position)
			}
		}
	})

	t.Run("falls back to rendered cards", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		if h.m.source != gallery.SourceCards {
			t.Errorf("expected SourceCards, got %v", h.m.source)
		}
		if got := h.m.session.Index.Photos(); !slices.Equal(got, first) {
			t.Errorf("index does not match rendered cards: %+v", got)
		}
	})

	t.Run("document failure shows alert", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{HomeErr: shared.ErrServiceUnavailable, Listing: first}, 100)

		if h.m.view != AlertView {
			t.Fatalf("expected AlertView, got %d", h.m.view)
		}
		h.send(keyRunes("x"))
		if h.m.view != GalleryView || h.m.alert != "" {
			t.Errorf("expected alert dismissed, got view %d", h.m.view)
		}
	})

	t.Run("keyboard opens and navigates viewer", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		h.send(tea.KeyMsg{Type: tea.KeyEnter})
		if h.m.view != ViewerView || h.m.session.Viewer.State().CurrentIndex != 0 {
			t.Fatalf("expected viewer at 0, got view %d state %+v", h.m.view, h.m.session.Viewer.State())
		}

		h.send(tea.KeyMsg{Type: tea.KeyLeft})
		if got := h.m.session.Viewer.State(); !got.IsOpen || got.CurrentIndex != 0 {
			t.Errorf("prev at first photo should be a no-op, got %+v", got)
		}

		h.send(tea.KeyMsg{Type: tea.KeyRight})
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		if got := h.m.session.Viewer.State().CurrentIndex; got != 2 {
			t.Errorf("expected index 2, got %d", got)
		}

		h.send(tea.KeyMsg{Type: tea.KeyEscape})
		if h.m.view != GalleryView || h.m.session.Viewer.IsOpen() {
			t.Errorf("expected viewer closed, got view %d", h.m.view)
		}
		if h.m.cursor != 2 {
			t.Errorf("expected cursor on last viewed photo, got %d", h.m.cursor)
		}
	})

	t.Run("clicking a card opens it", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		h.send(click(cardCols+2, headerRows+1)[0])
		if got := h.m.session.Viewer.State(); !got.IsOpen || got.CurrentIndex != 1 {
			t.Errorf("expected viewer at 1, got %+v", got)
		}
	})

	t.Run("clicking empty space keeps viewer closed", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		h.send(click(cardCols*3+2, headerRows+1)[0])
		if h.m.session.Viewer.IsOpen() {
			t.Error("expected click outside the cards to be ignored")
		}
	})

	t.Run("background click closes", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		for _, msg := range click(0, headerRows+2) {
			h.send(msg)
		}
		if h.m.view != GalleryView {
			t.Errorf("expected gallery after background click, got %d", h.m.view)
		}
	})

	t.Run("tap halves on narrow viewport", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 60)
		h.m.cursor = 1
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		_, _, left, top := h.m.imageBox()
		for _, msg := range click(left+1, top+1) {
			h.send(msg)
		}
		if got := h.m.session.Viewer.State().CurrentIndex; got != 0 {
			t.Errorf("left tap: expected index 0, got %d", got)
		}

		w, _, _, _ := h.m.imageBox()
		for _, msg := range click(left+w-2, top+1) {
			h.send(msg)
		}
		if got := h.m.session.Viewer.State().CurrentIndex; got != 1 {
			t.Errorf("right tap: expected index 1, got %d", got)
		}
	})

	t.Run("tap ignored on wide viewport", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)
		h.m.cursor = 1
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		_, _, left, top := h.m.imageBox()
		for _, msg := range click(left+1, top+1) {
			h.send(msg)
		}
		if got := h.m.session.Viewer.State(); !got.IsOpen || got.CurrentIndex != 1 {
			t.Errorf("expected no navigation, got %+v", got)
		}
	})

	t.Run("swipe on narrow viewport", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 60)
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		h.send(tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		h.send(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionRelease})
		if got := h.m.session.Viewer.State().CurrentIndex; got != 1 {
			t.Errorf("left swipe: expected index 1, got %d", got)
		}
		if h.m.view != ViewerView {
			t.Error("swipe should not close the viewer")
		}
	})

	t.Run("hint once per session on narrow viewport", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 60)

		if cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
			t.Error("expected hint timer")
		}
		if !h.m.session.Viewer.HintVisible() {
			t.Fatal("expected hint visible")
		}
		h.send(hintExpiredMsg())
		if h.m.session.Viewer.HintVisible() {
			t.Error("expected hint hidden after timer")
		}

		h.send(tea.KeyMsg{Type: tea.KeyEscape})
		if cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
			t.Error("expected no hint timer on second open")
		}
	})

	t.Run("no hint on wide viewport", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		h.send(tea.KeyMsg{Type: tea.KeyEnter})
		if h.m.session.Viewer.HintVisible() {
			t.Error("expected no hint")
		}
	})

	t.Run("scrolling loads the next page once", func(t *testing.T) {
		svc := &tu.MockService{
			Home:       tu.GalleryHTML(first),
			ListingErr: errors.New("404"),
			Pages: []tu.PageResponse{
				{Page: &models.PhotoPage{Photos: tu.Photos("p2", 2), HasNext: false}},
			},
		}
		h := newHarness(t, svc, 100)

		first := h.send(tea.KeyMsg{Type: tea.KeyPgDown})
		if !h.m.session.Fetcher.State().Loading {
			t.Fatal("expected a page fetch to start")
		}
		second := h.send(tea.KeyMsg{Type: tea.KeyPgDown})

		h.drive(first)
		h.drive(second)

		if got := svc.PageRequests(); !slices.Equal(got, []int{2}) {
			t.Errorf("requested pages %v, want [2]", got)
		}
		if h.m.session.Gallery.Len() != 5 || h.m.session.Index.Len() != 5 {
			t.Errorf("expected 5 cards and photos, got %d and %d", h.m.session.Gallery.Len(), h.m.session.Index.Len())
		}

		h.drive(h.send(tea.KeyMsg{Type: tea.KeyPgDown}))
		if len(svc.PageRequests()) != 1 {
			t.Error("expected no request after exhaustion")
		}
	})

	t.Run("failed page keeps counter", func(t *testing.T) {
		svc := &tu.MockService{
			Home:       tu.GalleryHTML(first),
			ListingErr: errors.New("404"),
			Pages:      []tu.PageResponse{{Err: errors.New("502")}},
		}
		h := newHarness(t, svc, 100)

		h.drive(h.send(tea.KeyMsg{Type: tea.KeyPgDown}))
		if s := h.m.session.Fetcher.State(); s.NextPage != 2 || !s.HasMore || s.Loading {
			t.Errorf("unexpected state after failure %+v", s)
		}
		if h.m.status == "" {
			t.Error("expected failure status")
		}
	})

	t.Run("theme toggle persists", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		h.send(keyRunes("t"))
		if dark, _ := h.prefs.Get(shared.ThemeDarkKey); !dark || !h.m.dark {
			t.Errorf("expected dark theme stored, got %v", dark)
		}
		h.send(keyRunes("t"))
		if dark, _ := h.prefs.Get(shared.ThemeDarkKey); dark {
			t.Error("expected light theme stored")
		}
	})

	t.Run("open and copy current photo", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		h.drive(h.send(keyRunes("o")))
		want := "http://example.com/media/p1-0.jpg"
		if !slices.Equal(h.opened, []string{want}) {
			t.Errorf("opened %v, want %s", h.opened, want)
		}
		if h.m.status != "Opened "+want {
			t.Errorf("unexpected status %q", h.m.status)
		}

		h.send(keyRunes("y"))
		if !slices.Equal(h.copied, []string{want}) {
			t.Errorf("copied %v, want %s", h.copied, want)
		}
	})

	t.Run("late listing reconciles the open viewer", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		h.send(tea.KeyMsg{Type: tea.KeyRight})
		if got := h.m.session.Viewer.State().CurrentIndex; got != 2 {
			t.Fatalf("expected viewer at 2, got %d", got)
		}

		h.send(indexLoadedMsg(gallery.ListingResult{Photos: []models.PhotoDescriptor{first[2], first[0]}}))
		if h.m.view != ViewerView || h.m.session.Viewer.State().CurrentIndex != 0 || h.m.cursor != 0 {
			t.Errorf("expected viewer to follow photo to 0, got view %d state %+v cursor %d",
				h.m.view, h.m.session.Viewer.State(), h.m.cursor)
		}
	})

	t.Run("empty late listing closes the viewer", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)
		h.send(tea.KeyMsg{Type: tea.KeyEnter})

		h.send(indexLoadedMsg(gallery.ListingResult{Photos: []models.PhotoDescriptor{}}))
		if h.m.view != GalleryView || h.m.session.Viewer.IsOpen() {
			t.Errorf("expected gallery view with closed viewer, got view %d state %+v", h.m.view, h.m.session.Viewer.State())
		}
		if h.m.source != gallery.SourceBulk || h.m.session.Index.Len() != 0 {
			t.Errorf("unexpected index state: source=%v len=%d", h.m.source, h.m.session.Index.Len())
		}
	})

	t.Run("copy binding listed in help", func(t *testing.T) {
		keys := newKeyMap()
		var found bool
		for _, group := range keys.FullHelp() {
			for _, b := range group {
				if b.Help().Key == "y" && b.Help().Desc == "copy url" {
					found = true
				}
			}
		}
		if !found {
			t.Error("expected copy binding in full help")
		}
		if !key.Matches(keyRunes("y"), keys.copy) {
			t.Error("expected y to match copy binding")
		}
	})

	t.Run("quit", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), ListingErr: errors.New("404")}, 100)

		msgs := collect(h.send(keyRunes("q")))
		if len(msgs) != 1 {
			t.Fatalf("expected quit message, got %v", msgs)
		}
		if _, ok := msgs[0].(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg, got %T", msgs[0])
		}
	})

	t.Run("views render", func(t *testing.T) {
		h := newHarness(t, &tu.MockService{Home: tu.GalleryHTML(first), Listing: first}, 100)
		if h.m.View() == "" {
			t.Error("expected gallery view")
		}
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
		if h.m.View() == "" {
			t.Error("expected viewer view")
		}
	})
}

func TestCardAt(t *testing.T) {
	tests := []struct {
		x, y, cols, n, want int
	}{
		{0, 0, 4, 10, 0},
		{cardCols, 0, 4, 10, 1},
		{0, cardRows, 4, 10, 4},
		{cardCols * 4, 0, 4, 10, -1},
		{cardCols * 3, cardRows * 2, 4, 10, -1},
		{-1, 0, 4, 10, -1},
	}
	for _, tt := range tests {
		if got := cardAt(tt.x, tt.y, tt.cols, tt.n); got != tt.want {
			t.Errorf("cardAt(%d, %d, %d, %d) = %d, want %d", tt.x, tt.y, tt.cols, tt.n, got, tt.want)
		}
	}
}
