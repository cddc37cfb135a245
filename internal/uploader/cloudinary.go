// Package uploader delegates image hosting to Cloudinary. Only the
// returned URL ever touches the database; image bytes are never stored
// or inspected beyond content-type and size checks.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	cldapi "github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/bragboardhq/backend/pkg/config"
)

// ErrNotConfigured signals that the image hosting service is missing
// credentials; callers surface it as ServiceUnavailable.
var ErrNotConfigured = errors.New("image upload service is not configured")

// AllowedImageTypes maps accepted content types to file extensions
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Size limits in bytes
const (
	MaxImageSize  = 10 * 1024 * 1024
	MaxAvatarSize = 5 * 1024 * 1024
)

// Result describes a hosted image
type Result struct {
	URL      string
	PublicID string
	Format   string
}

// Uploader is the image hosting boundary
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (*Result, error)
}

// CloudinaryUploader implements Uploader against the Cloudinary API
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds the uploader. Missing credentials are not an
// error at startup; uploads then fail with ErrNotConfigured so the rest
// of the application keeps working.
func NewCloudinary(cfg *config.CloudinaryConfig) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return &CloudinaryUploader{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload sends the image bytes to Cloudinary and returns the public URL
func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, folder string) (*Result, error) {
	if u.cld == nil {
		return nil, ErrNotConfigured
	}

	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), cldapi.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	return &Result{
		URL:      url,
		PublicID: resp.PublicID,
		Format:   resp.Format,
	}, nil
}
