// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/pictx/internal/models"
)

// PageResponse is one scripted reply of [MockService.Page].
type PageResponse struct {
	Page *models.PhotoPage
	Err  error
}

// MockService is a scripted test double for services.Service.
//
// Page replies are consumed in order; once exhausted, Page returns an error.
// When Gate is non-nil, Page blocks until a value is received from it (or ctx ends).
type MockService struct {
	Listing    []models.PhotoDescriptor
	ListingErr error
	Pages      []PageResponse
	Home       []byte
	HomeErr    error
	UploadResp *models.UploadResponse
	UploadErr  error
	Gate       chan struct{}

	mu           sync.Mutex
	pageRequests []int
	uploads      [][]string
}

func (m *MockService) AllPhotos(ctx context.Context) ([]models.PhotoDescriptor, error) {
	if m.ListingErr != nil {
		return nil, m.ListingErr
	}
	return m.Listing, nil
}

func (m *MockService) Page(ctx context.Context, page int) (*models.PhotoPage, error) {
	m.mu.Lock()
	m.pageRequests = append(m.pageRequests, page)
	n := len(m.pageRequests)
	m.mu.Unlock()

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if n > len(m.Pages) {
		return nil, fmt.Errorf("unexpected page request %d", page)
	}
	r := m.Pages[n-1]
	return r.Page, r.Err
}

func (m *MockService) HomePage(ctx context.Context) ([]byte, error) {
	return m.Home, m.HomeErr
}

func (m *MockService) Upload(ctx context.Context, action string, files []models.UploadFile, fields map[string]string) (*models.UploadResponse, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	m.mu.Lock()
	m.uploads = append(m.uploads, names)
	m.mu.Unlock()
	return m.UploadResp, m.UploadErr
}

// PageRequests returns the page numbers requested so far, in order.
func (m *MockService) PageRequests() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.pageRequests...)
}

// Uploads returns the file names of each upload call, in order.
func (m *MockService) Uploads() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.uploads...)
}

// Photos builds n descriptors whose fields are derived from prefix and position.
func Photos(prefix string, n int) []models.PhotoDescriptor {
	out := make([]models.PhotoDescriptor, n)
	for i := range out {
		out[i] = models.PhotoDescriptor{
			URL:     fmt.Sprintf("/media/%s-%d_thumb.jpg", prefix, i),
			FullURL: fmt.Sprintf("/media/%s-%d.jpg", prefix, i),
			Title:   fmt.Sprintf("%s %d", prefix, i),
		}
	}
	return out
}

// GalleryHTML renders a gallery document with one card per descriptor, the way the site templates do.
func GalleryHTML(photos []models.PhotoDescriptor) []byte {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body><div class="gallery" id="gallery">`)
	for _, p := range photos {
		fmt.Fprintf(&b, `<div class="card"><img src="%s" data-full="%s" aria-label="%s" alt="%s"></div>`,
			p.URL, p.FullURL, p.Title, p.Title)
	}
	b.WriteString(`</div><div id="viewer" class="viewer"><img id="viewer-img"><span class="viewer-hint"></span></div></body></html>`)
	return []byte(b.String())
}

// MemoryFlags is an in-memory flag store.
type MemoryFlags struct {
	mu     sync.Mutex
	values map[string]bool
	Err    error
}

func (f *MemoryFlags) Get(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	return f.values[key], nil
}

func (f *MemoryFlags) Set(key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if f.values == nil {
		f.values = make(map[string]bool)
	}
	f.values[key] = value
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
