// Package storage abstracts the object-storage service holding uploaded
// media. Files are validated before any network call and addressed by
// public URL after upload.
package storage

import (
	"context"
	"path/filepath"
	"time"
)

// File is an in-memory upload candidate.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Ext returns the original filename extension, including the dot.
func (f File) Ext() string {
	return filepath.Ext(f.Name)
}

type BlobStore interface {
	// Upload validates the file against the folder's rules, stores it
	// under a generated unique name and returns its public URL.
	Upload(ctx context.Context, f File, folder string) (string, error)
	// Delete removes the blob behind url. It reports whether a blob was
	// deleted; unparseable or foreign URLs return false without error.
	Delete(ctx context.Context, url string) (bool, error)
}

// Signer issues time-limited read URLs for stored blobs, used when the
// bucket is not publicly readable.
type Signer interface {
	// SignURL exchanges a stored public URL for one that grants read
	// access for ttl. URLs not belonging to the store are rejected.
	SignURL(ctx context.Context, url string, ttl time.Duration) (string, error)
}
