package tasks

import (
	"fmt"

	"github.com/desertthunder/pictx/internal/models"
)

// ProgressUpdate represents a progress event during an upload.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateFiles Phase = iota
	PreviewFiles
	SubmitFiles
)

func (p Phase) String() string {
	switch p {
	case ValidateFiles:
		return "validate"
	case PreviewFiles:
		return "preview"
	case SubmitFiles:
		return "submit"
	default:
		return ""
	}
}

func validatedUpdate(v Validation) ProgressUpdate {
	total := len(v.Valid) + len(v.Oversized)
	msg := fmt.Sprintf("%d of %d files ready", len(v.Valid), total)
	if len(v.Oversized) > 0 {
		msg += fmt.Sprintf(" (%d too large)", len(v.Oversized))
	}
	return ProgressUpdate{
		Phase:   ValidateFiles,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    v,
	}
}

func previewUpdate(step, total int, thumb *Thumbnail) ProgressUpdate {
	b := thumb.Image.Bounds()
	return ProgressUpdate{
		Phase:   PreviewFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s (%dx%d)", step, total, thumb.Name, b.Dx(), b.Dy()),
		Data:    thumb,
	}
}

func previewFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PreviewFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func submittingUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitFiles,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Uploading %d files...", total),
	}
}

func submittedUpdate(resp *models.UploadResponse) ProgressUpdate {
	msg := "Upload complete"
	if resp.Message != "" {
		msg = resp.Message
	}
	return ProgressUpdate{
		Phase:   SubmitFiles,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    resp,
	}
}

func submitFailedUpdate(alert string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitFiles,
		Step:    1,
		Total:   1,
		Message: "✗ " + alert,
	}
}
