package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ArchiveRepository stores user export files for later retrieval.
type ArchiveRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for a user's export file.
func GenerateObjectPath(userID uuid.UUID, exportedAt time.Time) string {
	filename := fmt.Sprintf("transactions_%s_%s.csv", exportedAt.Format("20060102T150405"), uuid.New().String()[:8])
	return path.Join(userID.String(), "exports", filename)
}

// NoopArchiveRepository discards uploads. Used when no S3 bucket is
// configured; exports still stream to the client.
type NoopArchiveRepository struct{}

// NewNoopArchiveRepository creates a NoopArchiveRepository.
func NewNoopArchiveRepository() *NoopArchiveRepository {
	return &NoopArchiveRepository{}
}

// Upload discards the data and returns the object path unchanged.
func (r *NoopArchiveRepository) Upload(_ context.Context, objectPath string, data io.Reader, _ string, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	return objectPath, nil
}

// Delete is a no-op.
func (r *NoopArchiveRepository) Delete(context.Context, string) error {
	return nil
}

// GeneratePresignedURL returns an empty URL; there is nothing to retrieve.
func (r *NoopArchiveRepository) GeneratePresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}
