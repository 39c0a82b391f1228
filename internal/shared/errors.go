package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig  = fmt.Errorf("configuration not found")
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrMissingSession = fmt.Errorf("missing session cookie")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrUnexpectedStatus   = fmt.Errorf("unexpected response status")
	ErrMalformedPayload   = fmt.Errorf("malformed response payload")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPhotoNotFound      = fmt.Errorf("photo not found")

	// Upload errors
	ErrFileTooLarge     = fmt.Errorf("file too large")
	ErrNoFiles          = fmt.Errorf("no files selected")
	ErrUploadFailed     = fmt.Errorf("upload failed")
	ErrUnsupportedImage = fmt.Errorf("unsupported image format")

	// Preference errors
	ErrPreferenceNotFound = fmt.Errorf("preference not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
