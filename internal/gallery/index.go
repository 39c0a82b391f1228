package gallery

import "github.com/desertthunder/pictx/internal/models"

// PhotoIndex is the ordered, navigable list of descriptors. Position N corresponds to card N.
//
// Full-resolution URLs are unique within an index; appending a known URL is a no-op.
type PhotoIndex struct {
	photos   []models.PhotoDescriptor
	byURL    map[string]int
	replaced bool
	appended bool
}

// NewPhotoIndex creates an index seeded with photos.
func NewPhotoIndex(photos ...models.PhotoDescriptor) *PhotoIndex {
	x := &PhotoIndex{}
	x.reset(photos)
	return x
}

func (x *PhotoIndex) reset(photos []models.PhotoDescriptor) {
	x.photos = make([]models.PhotoDescriptor, 0, len(photos))
	x.byURL = make(map[string]int, len(photos))
	for _, p := range photos {
		x.add(p)
	}
}

func (x *PhotoIndex) add(p models.PhotoDescriptor) bool {
	if _, ok := x.byURL[p.FullURL]; ok {
		return false
	}
	x.byURL[p.FullURL] = len(x.photos)
	x.photos = append(x.photos, p)
	return true
}

// Replace swaps in the bulk listing. It applies at most once, and only before any [PhotoIndex.Append].
func (x *PhotoIndex) Replace(photos []models.PhotoDescriptor) bool {
	if x.replaced || x.appended {
		return false
	}
	x.reset(photos)
	x.replaced = true
	return true
}

// Sync overwrites the index with descriptors derived from the rendered cards.
func (x *PhotoIndex) Sync(photos []models.PhotoDescriptor) {
	x.reset(photos)
}

// Append adds descriptors in order, skipping URLs already present, and returns how many were added.
func (x *PhotoIndex) Append(photos ...models.PhotoDescriptor) int {
	x.appended = true
	n := 0
	for _, p := range photos {
		if x.add(p) {
			n++
		}
	}
	return n
}

func (x *PhotoIndex) Len() int { return len(x.photos) }

// At returns the descriptor at position i.
func (x *PhotoIndex) At(i int) (models.PhotoDescriptor, bool) {
	if i < 0 || i >= len(x.photos) {
		return models.PhotoDescriptor{}, false
	}
	return x.photos[i], true
}

// IndexOf resolves a full-resolution URL by exact match, returning -1 when absent.
func (x *PhotoIndex) IndexOf(fullURL string) int {
	if i, ok := x.byURL[fullURL]; ok {
		return i
	}
	return -1
}

// Photos returns a copy of the descriptors in order.
func (x *PhotoIndex) Photos() []models.PhotoDescriptor {
	return append([]models.PhotoDescriptor(nil), x.photos...)
}
