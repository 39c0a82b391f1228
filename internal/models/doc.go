// Package models defines the data exchanged with the photo gallery endpoints.
//
//   - [PhotoDescriptor] : thumbnail URL, full-resolution URL and title of one photo
//   - [PhotoListing] : payload of the bulk listing endpoint
//   - [PhotoPage] : payload of one paginated listing request
//   - [UploadResponse] : payload returned by the upload form action
//
// Descriptors are values; nothing in this package mutates one after it is created.
package models
