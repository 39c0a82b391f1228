package tasks

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/pictx/internal/shared"
)

// DefaultMaxFileSize is the per-file upload limit.
const DefaultMaxFileSize int64 = 100 << 20

// File is a candidate for upload.
type File struct {
	Name string
	Size int64
	open func() (io.ReadCloser, error)
}

// OpenFile describes the regular file at path. Contents are read lazily.
func OpenFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%w: %s is not a regular file", shared.ErrInvalidArgument, path)
	}

	return File{
		Name: filepath.Base(path),
		Size: info.Size(),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// NewFile wraps in-memory contents.
func NewFile(name string, data []byte) File {
	return File{
		Name: name,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Open returns a reader over the file contents.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("%w: %s has no contents", shared.ErrInvalidInput, f.Name)
	}
	return f.open()
}

// Validation is the outcome of [Validate].
type Validation struct {
	Valid     []File
	Oversized []File
	MaxBytes  int64
	// Alert names every oversized file; empty when all files fit.
	Alert string
}

// Validate splits files by size. A file exactly at the limit is kept.
func Validate(files []File, maxBytes int64) Validation {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}

	v := Validation{MaxBytes: maxBytes}
	for _, f := range files {
		if f.Size > maxBytes {
			v.Oversized = append(v.Oversized, f)
			continue
		}
		v.Valid = append(v.Valid, f)
	}
	v.Alert = oversizedAlert(v.Oversized, maxBytes)
	return v
}

// Err wraps [shared.ErrFileTooLarge] with the alert, or returns nil when nothing was excluded.
func (v Validation) Err() error {
	if len(v.Oversized) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", shared.ErrFileTooLarge, v.Alert)
}

func oversizedAlert(files []File, maxBytes int64) string {
	if len(files) == 0 {
		return ""
	}

	lines := make([]string, 0, len(files)+1)
	lines = append(lines, fmt.Sprintf("The following files are too large (max %dMB):", shared.Megabytes(maxBytes)))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("%s (%dMB)", f.Name, shared.Megabytes(f.Size)))
	}
	return strings.Join(lines, "\n")
}
