package client

import (
	"context"
)

// Client is the transport-agnostic view of the oracle server. The local
// fortune engine never depends on it; every method is optional sugar.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	TemplateCount(ctx context.Context, period string) (int, error)
	TrackEvent(ctx context.Context, event string, data map[string]any) error
	BackupUploadURL(ctx context.Context) (key string, url string, err error)
	BackupDownloadURL(ctx context.Context, key string) (string, error)
}
