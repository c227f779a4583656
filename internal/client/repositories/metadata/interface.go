// Package metadata stores small keyed documents (profile, settings) in the
// local database.
package metadata

import (
	"context"
)

// Repository is a key/value store for client documents. Get returns
// common.ErrorNotFound when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
