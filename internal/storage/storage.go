package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs.
const DefaultPresignedURLExpiry = 15 * time.Minute

// AvatarStorage defines the interface for avatar object storage. Uploads
// and downloads go straight to the provider through presigned URLs; the
// server only ever handles object keys.
type AvatarStorage interface {
	// PresignUpload creates a temporary URL allowing a PUT of the avatar
	// object directly to the storage provider.
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)

	// PresignDownload creates a temporary URL for fetching the avatar.
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an avatar object, e.g. when it is replaced.
	DeleteObject(ctx context.Context, objectKey string) error
}
