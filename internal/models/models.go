package models

import (
	"io"
	"time"
)

// PhotoDescriptor identifies one photo. FullURL is its identity within a session.
type PhotoDescriptor struct {
	URL     string `json:"url" yaml:"url"`
	FullURL string `json:"full_url" yaml:"full_url"`
	Title   string `json:"title" yaml:"title"`
}

// PhotoListing is the payload of the bulk listing endpoint.
type PhotoListing struct {
	Photos []PhotoDescriptor `json:"photos" yaml:"photos"`
}

// PhotoPage is the payload of a paginated listing request.
type PhotoPage struct {
	Photos  []PhotoDescriptor `json:"photos"`
	HasNext bool              `json:"has_next"`
}

// UploadResponse is the payload returned by the upload form action.
type UploadResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Error       string `json:"error,omitempty"`
	// Message summarizes a successful batch; Errors names files the server could not process.
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// UploadFile is one file part of an upload submission.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// UploadRecord is one row of the local upload history.
type UploadRecord struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	FileCount    int       `json:"file_count"`
	SkippedCount int       `json:"skipped_count"`
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}
