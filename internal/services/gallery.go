// HTTP client for the gallery's JSON and form endpoints
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL       = "http://127.0.0.1:8000"
	defaultAllPhotosPath = "/all_photos.json"
	uploadFieldName      = "files"
)

var _ Service = (*GalleryClient)(nil)

// GalleryClient implements [Service] against a gallery site.
type GalleryClient struct {
	baseURL       *url.URL
	allPhotosPath string
	httpClient    *http.Client
	limiter       *rate.Limiter
	session       shared.Session
}

// GalleryClientOpts contains configuration options for creating a [GalleryClient].
type GalleryClientOpts struct {
	BaseURL           string
	AllPhotosPath     string
	RequestsPerSecond float64 // zero disables client-side limiting
	HTTPClient        *http.Client
	Session           shared.Session
}

// NewGalleryClient creates a new gallery client.
func NewGalleryClient(opts GalleryClientOpts) (*GalleryClient, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.AllPhotosPath == "" {
		opts.AllPhotosPath = defaultAllPhotosPath
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url %q: %v", shared.ErrInvalidConfig, opts.BaseURL, err)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &GalleryClient{
		baseURL:       base,
		allPhotosPath: opts.AllPhotosPath,
		httpClient:    opts.HTTPClient,
		limiter:       rate.NewLimiter(limit, 1),
		session:       opts.Session,
	}, nil
}

// AllPhotos performs GET on the bulk listing path.
func (c *GalleryClient) AllPhotos(ctx context.Context) ([]models.PhotoDescriptor, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.allPhotosPath, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var listing models.PhotoListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	if listing.Photos == nil {
		listing.Photos = []models.PhotoDescriptor{}
	}
	return listing.Photos, nil
}

// Page performs GET ?page=N relative to the base URL, asking for JSON the way an XHR would.
func (c *GalleryClient) Page(ctx context.Context, page int) (*models.PhotoPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "?page="+strconv.Itoa(page), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var p models.PhotoPage
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	return &p, nil
}

// HomePage performs GET on the base URL and returns the HTML document.
func (c *GalleryClient) HomePage(ctx context.Context) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	return c.do(req)
}

// Upload posts files and fields as multipart form data to action.
//
// A response with success=false is returned alongside an error wrapping [shared.ErrUploadFailed]
// that carries the server-provided message.
func (c *GalleryClient) Upload(ctx context.Context, action string, files []models.UploadFile, fields map[string]string) (*models.UploadResponse, error) {
	if len(files) == 0 {
		return nil, shared.ErrNoFiles
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(uploadFieldName, f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, action, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-CSRFToken", c.session.CSRFToken)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var out models.UploadResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		if resp.statusCode >= 300 {
			return nil, fmt.Errorf("%w: status %d", shared.ErrUnexpectedStatus, resp.statusCode)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	if !out.Success {
		return &out, fmt.Errorf("%w: %s", shared.ErrUploadFailed, out.Error)
	}
	return &out, nil
}

type rawResponse struct {
	statusCode int
	body       []byte
}

func (c *GalleryClient) newRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	rel, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(rel).String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.session.Cookie != "" {
		req.Header.Set("Cookie", c.session.Cookie)
	}
	return req, nil
}

// send waits on the limiter, performs req and reads the whole body regardless of status.
func (c *GalleryClient) send(req *http.Request) (*rawResponse, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	return &rawResponse{statusCode: resp.StatusCode, body: body}, nil
}

// do is send plus the non-2xx check.
func (c *GalleryClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.statusCode < 200 || resp.statusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d", shared.ErrUnexpectedStatus, req.Method, req.URL.Path, resp.statusCode)
	}
	return resp.body, nil
}
