package gallery

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/dom"
	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
)

// Service is the subset of the gallery endpoints a [Session] needs.
type Service interface {
	ListingClient
	PageClient
	HomePage(ctx context.Context) ([]byte, error)
}

// Options configures a [Session].
type Options struct {
	Layout         Layout
	Tracker        TrackerOpts
	Fetcher        FetcherOpts
	Viewer         ViewerOpts
	SwipeThreshold int
	SessionFlags   FlagStore
	Logger         *log.Logger
}

// OptionsFromConfig maps configuration onto session options. Layout and flags are left to the caller.
func OptionsFromConfig(cfg *shared.Config, logger *log.Logger) Options {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Options{
		Tracker: TrackerOpts{
			RootMargin:  cfg.Tracker.RootMargin,
			Threshold:   cfg.Tracker.Threshold,
			RevealDelay: cfg.Tracker.RevealDelay(),
		},
		Fetcher: FetcherOpts{
			FirstPage:    cfg.Pagination.FirstPage,
			TriggerRatio: cfg.Pagination.TriggerRatio,
			Logger:       shared.WithLogger(logger, "component", "fetcher"),
		},
		Viewer: ViewerOpts{
			NarrowWidth:  cfg.Viewer.NarrowWidth,
			HintDuration: cfg.Viewer.HintDuration(),
			Logger:       shared.WithLogger(logger, "component", "viewer"),
		},
		SwipeThreshold: cfg.Viewer.SwipeThreshold,
		Logger:         logger,
	}
}

// Session wires the gallery components together.
type Session struct {
	Gallery *Gallery
	Index   *PhotoIndex
	Tracker *Tracker
	Fetcher *PageFetcher
	Loader  *IndexLoader
	Viewer  *Viewer
	Input   *InputAdapter

	svc    Service
	logger *log.Logger
}

// NewSession creates an empty session backed by svc.
func NewSession(svc Service, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Layout == nil {
		opts.Layout = GridLayout{Columns: 1, CardWidth: 1, CardHeight: 1}
	}
	if opts.SessionFlags == nil {
		opts.SessionFlags = NewSessionFlags()
	}

	g := NewGallery()
	index := NewPhotoIndex()
	tracker := NewTracker(opts.Layout, opts.Tracker)
	viewer := NewViewer(index, opts.SessionFlags, opts.Viewer)

	return &Session{
		Gallery: g,
		Index:   index,
		Tracker: tracker,
		Fetcher: NewPageFetcher(svc, g, index, tracker, opts.Fetcher),
		Loader:  NewIndexLoader(svc, g, index, shared.WithLogger(opts.Logger, "component", "loader")),
		Viewer:  viewer,
		Input:   NewInputAdapter(viewer, opts.SwipeThreshold),
		svc:     svc,
		logger:  opts.Logger,
	}
}

// Render adds pre-rendered cards, observes them and mirrors them into the index.
func (s *Session) Render(photos []models.PhotoDescriptor) []*Card {
	cards := s.Gallery.Append(photos...)
	s.Tracker.Register(cards...)
	s.Index.Sync(s.Gallery.Descriptors())
	return cards
}

// FetchDocument retrieves and parses the server-rendered first page. Safe to call off the event loop.
func (s *Session) FetchDocument(ctx context.Context) ([]models.PhotoDescriptor, error) {
	doc, err := s.svc.HomePage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery page: %w", err)
	}
	return dom.ParseCardsBytes(doc)
}

// Bootstrap renders the first page and then loads the index, all on the calling goroutine.
func (s *Session) Bootstrap(ctx context.Context) (IndexSource, error) {
	photos, err := s.FetchDocument(ctx)
	if err != nil {
		return SourceCards, err
	}
	s.Render(photos)
	return s.ApplyListing(s.Loader.Fetch(ctx)), nil
}

// ApplyListing installs a listing result and moves an open viewer to wherever its photo landed.
func (s *Session) ApplyListing(res ListingResult) IndexSource {
	current, open := s.Viewer.Current()
	source := s.Loader.Apply(res)
	if open {
		s.Viewer.Follow(current.FullURL)
	}
	return source
}
