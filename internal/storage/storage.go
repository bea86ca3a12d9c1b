package storage

import "context"

// ObjectStorage abstracts where uploaded report files live. Two
// backends exist: Supabase Storage and S3, selected by configuration.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
