// Package repositories implements SQLite persistence for local client state.
//
// Key Implementations:
//   - [PreferenceRepository] : durable boolean preferences such as the theme, usable as a flag store
//   - [UploadHistoryRepository] : record of upload submissions and their outcome
//
// Tables are created by the migrations in the shared package; repositories assume they exist.
package repositories
