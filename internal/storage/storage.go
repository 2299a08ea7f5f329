package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains object storage abstractions for S3-compatible
// backends. Implementations must avoid using local disk and rely on
// streaming I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
// URL is the canonical publicly resolvable address of the object.
type ObjectInfo struct {
	Key          string
	URL          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// ObjectEntry is one (name, url) pair produced by a bucket enumeration.
type ObjectEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Storage is a reusable, S3-compatible object storage client interface.
// The constructor is expected to ensure the backing bucket exists with a
// public-read policy, so every stored object is addressable by URL.
type Storage interface {
	// Put uploads an object under the given key, overwriting any existing
	// object with the same key. The returned info carries the object's
	// canonical URL. Failure is total: no partial-write recovery.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// List enumerates every object in the bucket as (name, url) pairs.
	// Backend pagination is drained internally; each call re-enumerates.
	List(ctx context.Context) ([]ObjectEntry, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// ObjectURL returns the canonical public URL for a key without any I/O.
	ObjectURL(key string) string
}
