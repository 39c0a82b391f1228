// package services defines interface Service for talking to the photo gallery over HTTP
package services

import (
	"context"

	"github.com/desertthunder/pictx/internal/models"
)

// Service defines the gallery endpoints consumed by the client.
type Service interface {
	// AllPhotos retrieves the complete listing from the bulk endpoint.
	// A payload without a photos field yields an empty, non-nil slice.
	AllPhotos(ctx context.Context) ([]models.PhotoDescriptor, error)

	// Page retrieves one page of the paginated listing.
	Page(ctx context.Context, page int) (*models.PhotoPage, error)

	// HomePage retrieves the pre-rendered gallery document holding the first page of cards.
	HomePage(ctx context.Context) ([]byte, error)

	// Upload submits files to the upload form action as multipart form data.
	Upload(ctx context.Context, action string, files []models.UploadFile, fields map[string]string) (*models.UploadResponse, error)
}
