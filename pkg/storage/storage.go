package stores

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectInfo describes one stored object, enough for the orphan sweep to
// decide whether it is stale.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the object storage used for incident photos. Keys are
// slash-separated paths such as "incident_images/<id>.jpg".
type Store interface {
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Read(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// PublicURL returns the URL under which the object can be fetched.
	PublicURL(key string) string
}

// Config selects and configures a storage backend.
type Config struct {
	Driver    string `env:"STORAGE_DRIVER"` // minio | cos | memory
	Endpoint  string `env:"STORAGE_ENDPOINT"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Bucket    string `env:"STORAGE_BUCKET"`
	UseSSL    bool   `env:"STORAGE_USE_SSL"`
	BaseURL   string `env:"STORAGE_PUBLIC_BASE"` // optional public-facing base URL
}

// New builds the configured Store.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinioStore(cfg), nil
	case "cos":
		return NewCOSStore(cfg)
	case "memory":
		return NewMemoryStore(cfg.BaseURL), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
