package settings

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/go-playground/validator/v10"

	"github.com/mjtoys/docgen/internal/platform/blob"
)

// Service reads and updates company settings. Reads fall back to the
// hardcoded defaults so callers always get a usable record; the snapshot
// returned here is passed explicitly into rendering and never cached by it.
type Service struct {
	repo     Repository
	blobs    blob.Store
	validate *validator.Validate
}

// NewService constructs the settings service.
func NewService(repo Repository, blobs blob.Store) *Service {
	return &Service{
		repo:     repo,
		blobs:    blobs,
		validate: validator.New(),
	}
}

// Get returns the stored settings, or the defaults when nothing is stored.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Defaults(), nil
		}
		return Settings{}, err
	}
	return *stored, nil
}

// Update validates and stores a full settings record. Last write wins.
func (s *Service) Update(ctx context.Context, in Settings) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}
	return s.repo.Put(ctx, in)
}

// UploadLogo stores the logo bytes and points the settings record at the new
// URL. The blob upload happening but the settings write failing leaves the
// old logo in effect, which is harmless.
func (s *Service) UploadLogo(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty logo upload")
	}
	if filename == "" {
		filename = "logo.png"
	}
	if contentType == "" {
		contentType = "image/png"
	}
	url, err := s.blobs.Put(ctx, path.Join("logos", path.Base(filename)), data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	current.LogoURL = url
	if err := s.repo.Put(ctx, current); err != nil {
		return "", fmt.Errorf("save logo url: %w", err)
	}
	return url, nil
}
