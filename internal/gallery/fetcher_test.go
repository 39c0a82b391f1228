package gallery

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/pictx/internal/models"
	tu "github.com/desertthunder/pictx/internal/testing"
)

func newTestFetcher(svc *tu.MockService, rendered int) (*PageFetcher, *Gallery, *PhotoIndex, *Tracker) {
	g := NewGallery(tu.Photos("p1", rendered)...)
	index := NewPhotoIndex(g.Descriptors()...)
	tracker := NewTracker(GridLayout{Columns: 1, CardWidth: 10, CardHeight: 10}, TrackerOpts{})
	return NewPageFetcher(svc, g, index, tracker, FetcherOpts{}), g, index, tracker
}

func page(prefix string, n int, hasNext bool) tu.PageResponse {
	return tu.PageResponse{Page: &models.PhotoPage{Photos: tu.Photos(prefix, n), HasNext: hasNext}}
}

func TestPageFetcher(t *testing.T) {
	ctx := context.Background()

	t.Run("initial state", func(t *testing.T) {
		f, _, _, _ := newTestFetcher(&tu.MockService{}, 0)
		if s := f.State(); s != (PaginationState{NextPage: 2, HasMore: true}) {
			t.Errorf("unexpected state %+v", s)
		}
	})

	t.Run("two pages then exhaustion", func(t *testing.T) {
		svc := &tu.MockService{Pages: []tu.PageResponse{
			page("p2", 3, true),
			page("p3", 2, false),
		}}
		f, g, index, tracker := newTestFetcher(svc, 4)

		cards, err := f.Fetch(ctx)
		if err != nil || len(cards) != 3 {
			t.Fatalf("first fetch: %d cards, err %v", len(cards), err)
		}
		if cards[0].Position != 4 {
			t.Errorf("expected appended card at position 4, got %d", cards[0].Position)
		}

		if _, err := f.Fetch(ctx); err != nil {
			t.Fatalf("second fetch: %v", err)
		}
		if cards, err := f.Fetch(ctx); cards != nil || err != nil {
			t.Errorf("third fetch should be skipped, got %d cards, err %v", len(cards), err)
		}

		if got := svc.PageRequests(); !slices.Equal(got, []int{2, 3}) {
			t.Errorf("requested pages %v, want [2 3]", got)
		}
		if g.Len() != 9 || index.Len() != 9 {
			t.Errorf("expected 9 cards and photos, got %d and %d", g.Len(), index.Len())
		}
		if tracker.Observed() != 5 {
			t.Errorf("expected 5 appended cards registered, got %d", tracker.Observed())
		}
		if s := f.State(); s != (PaginationState{NextPage: 4, HasMore: false}) {
			t.Errorf("unexpected final state %+v", s)
		}
	})

	t.Run("empty page ends pagination", func(t *testing.T) {
		svc := &tu.MockService{Pages: []tu.PageResponse{
			{Page: &models.PhotoPage{HasNext: true}},
		}}
		f, _, _, _ := newTestFetcher(svc, 1)

		if _, err := f.Fetch(ctx); err != nil {
			t.Fatalf("empty page should not be an error: %v", err)
		}
		if s := f.State(); s != (PaginationState{NextPage: 2, HasMore: false}) {
			t.Errorf("unexpected state %+v", s)
		}
	})

	t.Run("nil page ends pagination", func(t *testing.T) {
		f, _, _, _ := newTestFetcher(&tu.MockService{Pages: []tu.PageResponse{{}}}, 1)
		f.Fetch(ctx)
		if f.State().HasMore {
			t.Error("expected hasMore=false")
		}
	})

	t.Run("failure retries same page", func(t *testing.T) {
		svc := &tu.MockService{Pages: []tu.PageResponse{
			{Err: errors.New("502 bad gateway")},
			page("p2", 2, true),
		}}
		f, g, _, _ := newTestFetcher(svc, 1)

		if _, err := f.Fetch(ctx); err == nil {
			t.Fatal("expected error from failed page")
		}
		if s := f.State(); s != (PaginationState{NextPage: 2, HasMore: true}) {
			t.Errorf("failure changed state: %+v", s)
		}
		if g.Len() != 1 {
			t.Errorf("failure appended cards: %d", g.Len())
		}

		if _, err := f.Fetch(ctx); err != nil {
			t.Fatalf("retry: %v", err)
		}
		if got := svc.PageRequests(); !slices.Equal(got, []int{2, 2}) {
			t.Errorf("requested pages %v, want [2 2]", got)
		}
	})

	t.Run("overlapping triggers issue one request", func(t *testing.T) {
		svc := &tu.MockService{
			Pages: []tu.PageResponse{page("p2", 2, true)},
			Gate:  make(chan struct{}),
		}
		f, g, _, _ := newTestFetcher(svc, 2)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Trigger(ctx, 80, 20, 100)
		}()

		deadline := time.Now().Add(2 * time.Second)
		for len(svc.PageRequests()) == 0 {
			if time.Now().After(deadline) {
				t.Fatal("first request never started")
			}
			time.Sleep(time.Millisecond)
		}
		if !f.State().Loading {
			t.Error("expected loading while the request is in flight")
		}

		if cards, err := f.Trigger(ctx, 90, 20, 100); cards != nil || err != nil {
			t.Errorf("second trigger should be a no-op, got %d cards, err %v", len(cards), err)
		}

		close(svc.Gate)
		wg.Wait()

		if got := svc.PageRequests(); len(got) != 1 {
			t.Errorf("expected exactly one request, got %v", got)
		}
		if g.Len() != 4 {
			t.Errorf("expected 4 cards, got %d", g.Len())
		}
		if f.State().Loading {
			t.Error("loading not cleared")
		}
	})

	t.Run("trigger ratio", func(t *testing.T) {
		f, _, _, _ := newTestFetcher(&tu.MockService{}, 0)
		tests := []struct {
			scrollTop, viewport, height int
			want                        bool
		}{
			{0, 500, 1000, false},
			{299, 500, 1000, false},
			{300, 500, 1000, true},
			{0, 500, 400, true},
		}
		for _, tt := range tests {
			if got := f.ShouldTrigger(tt.scrollTop, tt.viewport, tt.height); got != tt.want {
				t.Errorf("ShouldTrigger(%d, %d, %d) = %v, want %v", tt.scrollTop, tt.viewport, tt.height, got, tt.want)
			}
		}

		if cards, err := f.Trigger(ctx, 0, 100, 1000); cards != nil || err != nil {
			t.Error("trigger below the ratio should not fetch")
		}
	})

	t.Run("split begin request complete", func(t *testing.T) {
		svc := &tu.MockService{Pages: []tu.PageResponse{page("p2", 1, false)}}
		f, _, index, _ := newTestFetcher(svc, 1)

		n, ok := f.Begin()
		if !ok || n != 2 {
			t.Fatalf("Begin() = %d, %v", n, ok)
		}
		if _, ok := f.Begin(); ok {
			t.Error("Begin should refuse while loading")
		}

		res := f.Request(ctx, n)
		cards := f.Complete(res)
		if len(cards) != 1 || index.Len() != 2 {
			t.Errorf("unexpected completion: %d cards, index %d", len(cards), index.Len())
		}
		if _, ok := f.Begin(); ok {
			t.Error("Begin should refuse after exhaustion")
		}
	})
}
