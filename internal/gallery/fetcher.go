package gallery

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/models"
)

const (
	DefaultFirstPage    = 2
	DefaultTriggerRatio = 0.8
)

// PageClient retrieves one page of the paginated listing.
type PageClient interface {
	Page(ctx context.Context, page int) (*models.PhotoPage, error)
}

// PaginationState is owned by [PageFetcher].
type PaginationState struct {
	NextPage int
	Loading  bool
	HasMore  bool
}

// PageResult is the outcome of one page request.
type PageResult struct {
	Page    int
	Photos  []models.PhotoDescriptor
	HasNext bool
	Err     error
}

// FetcherOpts configures a [PageFetcher]. Zero values select the defaults.
type FetcherOpts struct {
	FirstPage    int
	TriggerRatio float64
	Logger       *log.Logger
}

// PageFetcher appends result pages to the gallery when the reader scrolls near the end.
//
// Fetches are serialized: while one is in flight, further triggers are no-ops. A failed page leaves
// the counter and hasMore untouched so the next trigger retries the same page. There is no backoff.
type PageFetcher struct {
	client  PageClient
	gallery *Gallery
	index   *PhotoIndex
	reveal  Registrar
	ratio   float64
	logger  *log.Logger

	mu    sync.Mutex
	state PaginationState
}

// NewPageFetcher creates a fetcher that appends to g and index and registers new cards with reveal.
func NewPageFetcher(client PageClient, g *Gallery, index *PhotoIndex, reveal Registrar, opts FetcherOpts) *PageFetcher {
	if opts.FirstPage == 0 {
		opts.FirstPage = DefaultFirstPage
	}
	if opts.TriggerRatio == 0 {
		opts.TriggerRatio = DefaultTriggerRatio
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &PageFetcher{
		client:  client,
		gallery: g,
		index:   index,
		reveal:  reveal,
		ratio:   opts.TriggerRatio,
		logger:  opts.Logger,
		state:   PaginationState{NextPage: opts.FirstPage, HasMore: true},
	}
}

// State returns a snapshot of the pagination state.
func (f *PageFetcher) State() PaginationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ShouldTrigger reports whether the bottom of the viewport has reached the trigger ratio of the page.
func (f *PageFetcher) ShouldTrigger(scrollTop, viewportHeight, pageHeight int) bool {
	return float64(scrollTop+viewportHeight) >= float64(pageHeight)*f.ratio
}

// Begin claims the next page. It returns false while a fetch is in flight or after exhaustion.
func (f *PageFetcher) Begin() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Loading || !f.state.HasMore {
		return 0, false
	}
	f.state.Loading = true
	return f.state.NextPage, true
}

// Request performs the network half of a fetch. Safe to call off the event loop.
func (f *PageFetcher) Request(ctx context.Context, page int) PageResult {
	p, err := f.client.Page(ctx, page)
	if err != nil {
		return PageResult{Page: page, Err: err}
	}
	if p == nil {
		return PageResult{Page: page}
	}
	return PageResult{Page: page, Photos: p.Photos, HasNext: p.HasNext}
}

// Complete applies a result and always releases the loading flag. It returns the appended cards.
func (f *PageFetcher) Complete(res PageResult) []*Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.state.Loading = false }()

	if res.Err != nil {
		f.logger.Warn("failed to load more photos", "page", res.Page, "error", res.Err)
		return nil
	}

	if len(res.Photos) == 0 {
		f.state.HasMore = false
		f.logger.Debug("no more photos", "page", res.Page)
		return nil
	}

	cards := f.gallery.Append(res.Photos...)
	f.index.Append(res.Photos...)
	f.reveal.Register(cards...)

	f.state.NextPage++
	f.state.HasMore = res.HasNext
	f.logger.Debug("appended photos", "page", res.Page, "count", len(cards), "has_next", res.HasNext)

	return cards
}

// Fetch runs Begin, Request and Complete on the calling goroutine. It returns nil cards and a nil
// error when the fetch was skipped, and the request error when it failed.
func (f *PageFetcher) Fetch(ctx context.Context) ([]*Card, error) {
	page, ok := f.Begin()
	if !ok {
		return nil, nil
	}

	res := f.Request(ctx, page)
	return f.Complete(res), res.Err
}

// Trigger fetches when the scroll position has reached the trigger point.
func (f *PageFetcher) Trigger(ctx context.Context, scrollTop, viewportHeight, pageHeight int) ([]*Card, error) {
	if !f.ShouldTrigger(scrollTop, viewportHeight, pageHeight) {
		return nil, nil
	}
	return f.Fetch(ctx)
}
