package gallery

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/models"
)

// ListingClient retrieves the complete photo listing.
type ListingClient interface {
	AllPhotos(ctx context.Context) ([]models.PhotoDescriptor, error)
}

// CardSource provides descriptors for the currently rendered cards, in display order.
type CardSource interface {
	Descriptors() []models.PhotoDescriptor
}

// IndexSource records where the index contents came from after a load.
type IndexSource int

const (
	// SourceBulk means the bulk listing replaced the index.
	SourceBulk IndexSource = iota
	// SourceCards means the bulk load failed and the index was derived from rendered cards.
	SourceCards
	// SourceKept means the bulk listing arrived after pagination had appended and was discarded.
	SourceKept
)

func (s IndexSource) String() string {
	switch s {
	case SourceBulk:
		return "bulk"
	case SourceCards:
		return "cards"
	case SourceKept:
		return "kept"
	default:
		return "unknown"
	}
}

// ListingResult is the outcome of [IndexLoader.Fetch].
type ListingResult struct {
	Photos []models.PhotoDescriptor
	Err    error
}

// IndexLoader populates a [PhotoIndex] from the bulk endpoint, falling back to rendered cards.
//
// There is no retry: a failed load is recovered locally and never surfaced.
type IndexLoader struct {
	client ListingClient
	cards  CardSource
	index  *PhotoIndex
	logger *log.Logger
}

// NewIndexLoader creates a loader writing into index.
func NewIndexLoader(client ListingClient, cards CardSource, index *PhotoIndex, logger *log.Logger) *IndexLoader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &IndexLoader{client: client, cards: cards, index: index, logger: logger}
}

// Fetch performs the bulk request. Safe to call off the event loop.
func (l *IndexLoader) Fetch(ctx context.Context) ListingResult {
	photos, err := l.client.AllPhotos(ctx)
	return ListingResult{Photos: photos, Err: err}
}

// Apply installs a fetch result into the index.
func (l *IndexLoader) Apply(res ListingResult) IndexSource {
	if res.Err != nil {
		derived := l.cards.Descriptors()
		l.index.Sync(derived)
		l.logger.Debug("bulk photo listing unavailable, using rendered cards", "cards", len(derived), "error", res.Err)
		return SourceCards
	}

	photos := res.Photos
	if photos == nil {
		photos = []models.PhotoDescriptor{}
	}

	if !l.index.Replace(photos) {
		l.logger.Debug("bulk photo listing arrived after pagination, keeping current index", "photos", len(photos))
		return SourceKept
	}

	l.logger.Debug("photo index loaded", "photos", len(photos))
	return SourceBulk
}

// Load is Fetch followed by Apply on the calling goroutine.
func (l *IndexLoader) Load(ctx context.Context) IndexSource {
	return l.Apply(l.Fetch(ctx))
}
