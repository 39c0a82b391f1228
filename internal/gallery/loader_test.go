package gallery

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	tu "github.com/desertthunder/pictx/internal/testing"
)

func TestIndexLoader(t *testing.T) {
	logger := log.New(io.Discard)

	t.Run("bulk listing replaces index", func(t *testing.T) {
		g := NewGallery(tu.Photos("dom", 2)...)
		index := NewPhotoIndex(g.Descriptors()...)
		svc := &tu.MockService{Listing: tu.Photos("bulk", 6)}

		src := NewIndexLoader(svc, g, index, logger).Load(context.Background())

		if src != SourceBulk {
			t.Errorf("expected SourceBulk, got %v", src)
		}
		if index.Len() != 6 {
			t.Errorf("expected 6 photos, got %d", index.Len())
		}
	})

	t.Run("missing photos yields empty index", func(t *testing.T) {
		g := NewGallery(tu.Photos("dom", 2)...)
		index := NewPhotoIndex(g.Descriptors()...)
		svc := &tu.MockService{Listing: nil}

		src := NewIndexLoader(svc, g, index, logger).Load(context.Background())

		if src != SourceBulk {
			t.Errorf("expected SourceBulk, got %v", src)
		}
		if index.Len() != 0 {
			t.Errorf("expected empty index, got %d", index.Len())
		}
	})

	t.Run("failure falls back to rendered cards in order", func(t *testing.T) {
		rendered := tu.Photos("dom", 3)
		g := NewGallery(rendered...)
		index := NewPhotoIndex()
		svc := &tu.MockService{ListingErr: errors.New("connection refused")}

		src := NewIndexLoader(svc, g, index, logger).Load(context.Background())

		if src != SourceCards {
			t.Errorf("expected SourceCards, got %v", src)
		}
		got := index.Photos()
		if len(got) != len(rendered) {
			t.Fatalf("expected %d photos, got %d", len(rendered), len(got))
		}
		for i := range rendered {
			if got[i] != rendered[i] {
				t.Errorf("photo %d = %+v, want %+v", i, got[i], rendered[i])
			}
		}
	})

	t.Run("fallback sees cards rendered at apply time", func(t *testing.T) {
		g := NewGallery(tu.Photos("dom", 1)...)
		index := NewPhotoIndex()
		loader := NewIndexLoader(&tu.MockService{ListingErr: errors.New("boom")}, g, index, logger)

		res := loader.Fetch(context.Background())
		g.Append(tu.Photos("late", 2)...)
		loader.Apply(res)

		if index.Len() != 3 {
			t.Errorf("expected 3 photos, got %d", index.Len())
		}
	})

	t.Run("late bulk listing is discarded after pagination", func(t *testing.T) {
		g := NewGallery(tu.Photos("dom", 2)...)
		index := NewPhotoIndex(g.Descriptors()...)
		index.Append(g.Append(tu.Photos("page2", 1)...)[0].Photo)

		src := NewIndexLoader(&tu.MockService{Listing: tu.Photos("bulk", 9)}, g, index, logger).
			Apply(ListingResult{Photos: tu.Photos("bulk", 9)})

		if src != SourceKept {
			t.Errorf("expected SourceKept, got %v", src)
		}
		if index.Len() != 3 {
			t.Errorf("expected index to keep 3 photos, got %d", index.Len())
		}
	})

	t.Run("source names", func(t *testing.T) {
		for src, want := range map[IndexSource]string{SourceBulk: "bulk", SourceCards: "cards", SourceKept: "kept", IndexSource(9): "unknown"} {
			if src.String() != want {
				t.Errorf("%d.String() = %q, want %q", src, src.String(), want)
			}
		}
	})
}
