// package tasks implements the photo upload pipeline.
//
// The core abstraction is Pipeline, which validates, previews and submits a selection of files.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/services"
	"github.com/desertthunder/pictx/internal/shared"
)

// GenericFailureMessage is shown when a failed upload carries no server message.
const GenericFailureMessage = "Upload failed. Please try again."

// CSRFFieldName is the hidden form field carrying the CSRF token.
const CSRFFieldName = "csrfmiddlewaretoken"

// UploadResult contains all data from one pipeline run.
type UploadResult struct {
	Validation Validation             // Size check outcome
	Previews   []*Thumbnail           // Thumbnails of kept files that decoded
	Response   *models.UploadResponse // Server response (nil when the request never completed)
	Submitted  bool                   // Whether the server accepted the batch
	// Alert is the message to show after a failed submission. Empty on success.
	Alert string
}

// HistoryRecorder persists upload outcomes.
type HistoryRecorder interface {
	Create(rec *models.UploadRecord) error
}

// Pipeline defines the upload operations.
type Pipeline interface {
	// Run validates, previews and submits files. Oversized files are excluded, never fatal.
	Run(ctx context.Context, progress chan<- ProgressUpdate, files []File) (*UploadResult, error)

	// Submit posts already-validated files to the upload action.
	Submit(ctx context.Context, progress chan<- ProgressUpdate, files []File) (*models.UploadResponse, error)
}

// UploadOpts configures an [UploadEngine]. Zero values select the defaults.
type UploadOpts struct {
	Action        string
	MaxFileSize   int64
	ThumbnailSize int
	CSRFToken     string
	SessionID     string
	Logger        *log.Logger
}

// UploadEngine implements [Pipeline] on top of a gallery [services.Service].
type UploadEngine struct {
	svc     services.Service
	history HistoryRecorder
	opts    UploadOpts
}

var _ Pipeline = (*UploadEngine)(nil)

// NewUploadEngine creates a new UploadEngine. history may be nil.
func NewUploadEngine(svc services.Service, history HistoryRecorder, opts UploadOpts) *UploadEngine {
	if opts.Action == "" {
		opts.Action = "/upload/"
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.ThumbnailSize <= 0 {
		opts.ThumbnailSize = DefaultThumbnailSize
	}
	if opts.SessionID == "" {
		opts.SessionID = shared.GenerateID()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &UploadEngine{svc: svc, history: history, opts: opts}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Validate applies the configured size limit.
func (e *UploadEngine) Validate(files []File) Validation {
	return Validate(files, e.opts.MaxFileSize)
}

// Preview builds a thumbnail per file. Files that cannot be previewed are reported and skipped.
func (e *UploadEngine) Preview(ctx context.Context, progress chan<- ProgressUpdate, files []File) []*Thumbnail {
	thumbs := make([]*Thumbnail, 0, len(files))
	for i, f := range files {
		if ctx.Err() != nil {
			break
		}

		thumb, err := e.previewFile(f)
		if err != nil {
			e.sendProgress(progress, previewFailedUpdate(i+1, len(files), f.Name, err))
			continue
		}
		thumbs = append(thumbs, thumb)
		e.sendProgress(progress, previewUpdate(i+1, len(files), thumb))
	}
	return thumbs
}

func (e *UploadEngine) previewFile(f File) (*Thumbnail, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Preview(f.Name, rc, e.opts.ThumbnailSize)
}

// Submit posts files to the upload action. On failure the returned error wraps [shared.ErrUploadFailed]
// and [FailureMessage] yields the alert text.
func (e *UploadEngine) Submit(ctx context.Context, progress chan<- ProgressUpdate, files []File) (*models.UploadResponse, error) {
	if len(files) == 0 {
		return nil, shared.ErrNoFiles
	}

	parts := make([]models.UploadFile, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUploadFailed, err)
		}
		closers = append(closers, rc)
		parts = append(parts, models.UploadFile{Name: f.Name, Reader: rc})
	}

	fields := map[string]string{}
	if e.opts.CSRFToken != "" {
		fields[CSRFFieldName] = e.opts.CSRFToken
	}

	e.sendProgress(progress, submittingUpdate(len(files)))

	resp, err := e.svc.Upload(ctx, e.opts.Action, parts, fields)
	if err != nil {
		e.sendProgress(progress, submitFailedUpdate(FailureMessage(resp)))
		if errors.Is(err, shared.ErrUploadFailed) {
			return resp, err
		}
		return resp, fmt.Errorf("%w: %w", shared.ErrUploadFailed, err)
	}

	e.sendProgress(progress, submittedUpdate(resp))
	return resp, nil
}

// Run performs the full pipeline. The returned error is non-nil only when no upload happened or the
// submission failed; the result is always populated as far as the run got.
func (e *UploadEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, files []File) (*UploadResult, error) {
	v := e.Validate(files)
	result := &UploadResult{Validation: v}
	e.sendProgress(progress, validatedUpdate(v))

	if len(v.Valid) == 0 {
		return result, shared.ErrNoFiles
	}

	result.Previews = e.Preview(ctx, progress, v.Valid)

	resp, err := e.Submit(ctx, progress, v.Valid)
	result.Response = resp
	if err != nil {
		result.Alert = FailureMessage(resp)
		e.record(v, false, result.Alert)
		return result, err
	}

	result.Submitted = true
	e.record(v, true, resp.Message)
	return result, nil
}

func (e *UploadEngine) record(v Validation, success bool, message string) {
	if e.history == nil {
		return
	}
	err := e.history.Create(&models.UploadRecord{
		SessionID:    e.opts.SessionID,
		FileCount:    len(v.Valid),
		SkippedCount: len(v.Oversized),
		Success:      success,
		Message:      message,
	})
	if err != nil {
		e.opts.Logger.Warn("failed to record upload history", "session", e.opts.SessionID, "files", len(v.Valid), "error", err)
	}
}

// FailureMessage is the alert for a failed submission: the server's error when present, else the generic text.
func FailureMessage(resp *models.UploadResponse) string {
	if resp != nil && resp.Error != "" {
		return resp.Error
	}
	return GenericFailureMessage
}
