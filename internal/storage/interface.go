package storage

import apperrors "github.com/julianstephens/sisy/internal/errors"

// ErrNotFound is returned by Get for a key that was never written.
var ErrNotFound = apperrors.ErrNotFound

// Provider is a durable string-keyed blob store. Put replaces the whole value;
// implementations must make a completed Put fully visible to the next Get.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error

	// GetConfigPath returns a non-sensitive description of where data lives.
	GetConfigPath() string
}
