// Package tasks runs the photo upload pipeline with real-time progress reporting.
//
// # Pipeline
//
// [UploadEngine] implements [Pipeline] in three phases:
//
//  1. [Validate] : size check against the configured limit
//     - Oversized files are excluded and named in an alert with their size rounded to whole megabytes
//     - Remaining files are kept in selection order
//
//  2. [Preview] : bounded thumbnail per kept file
//     - Aspect ratio preserved, never upscaled
//     - Files that do not decode are still submitted; the server decides
//
//  3. [UploadEngine.Submit] : multipart POST to the upload form action
//     - A failed submission yields the server's error message, or [GenericFailureMessage]
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on a caller-supplied channel using select with default,
// so a slow or absent reader never blocks the upload.
//
// # Selecting Files
//
// [Collect] expands directories into the image files beneath them, and [Watcher] reports image
// files as they are written into a directory, batched once writes settle.
//
// # Upload History
//
// The optional [HistoryRecorder] (repositories.UploadHistoryRepository) stores the outcome of each
// submission. Recording errors are ignored so history never blocks an upload.
package tasks
