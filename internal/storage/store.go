// Package storage reads and writes IR documents and rendered output, either
// on the local filesystem or in S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrOpenLocation is returned when a declared location cannot be read or written.
	ErrOpenLocation = errors.New("open location")
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoS3Config is returned for s3:// locations when no S3 endpoint is configured.
	ErrNoS3Config = errors.New("s3 location without s3 configuration")
)

const s3Scheme = "s3://"

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps keys as paths relative to Root, or as given when Root is empty.
type FileStore struct {
	Root string
}

func (f FileStore) path(key string) string {
	if f.Root == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(f.Root, key)
}

func (f FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return data, err
}

// Put writes data, creating parent directories.
func (f FileStore) Put(_ context.Context, key string, data []byte) error {
	p := f.path(key)
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(p, data, 0o644)
}

// Delete removes key. A missing key is not an error.
func (f FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseLocation splits an s3://bucket/key location. ok is false for
// anything else, which is treated as a file path.
func ParseLocation(location string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(location, s3Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, bucket != ""
}

// Join appends name to a directory location. S3 locations are joined with
// a forward slash, file locations with the OS separator.
func Join(dir, name string) string {
	if strings.HasPrefix(dir, s3Scheme) {
		return strings.TrimSuffix(dir, "/") + "/" + strings.TrimPrefix(name, "/")
	}
	return filepath.Join(dir, name)
}

// Locations dispatches locations to the local filesystem or to one S3Store
// per bucket. S3 stores are created on first use.
type Locations struct {
	Files FileStore
	S3    *S3Config

	mu      sync.Mutex
	buckets map[string]Store
}

func NewLocations(s3 *S3Config) *Locations {
	return &Locations{S3: s3, buckets: make(map[string]Store)}
}

func (l *Locations) store(location string) (Store, string, error) {
	bucket, key, ok := ParseLocation(location)
	if !ok {
		return l.Files, location, nil
	}
	if key == "" {
		return nil, "", fmt.Errorf("%s: missing object key", location)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, found := l.buckets[bucket]; found {
		return s, key, nil
	}
	if !l.S3.Configured() {
		return nil, "", ErrNoS3Config
	}
	s, err := NewS3Store(*l.S3, bucket)
	if err != nil {
		return nil, "", err
	}
	if l.buckets == nil {
		l.buckets = make(map[string]Store)
	}
	l.buckets[bucket] = s
	return s, key, nil
}

// Read returns the contents of location.
func (l *Locations) Read(ctx context.Context, location string) ([]byte, error) {
	s, key, err := l.store(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	return data, nil
}

// Write replaces the contents of location with data.
func (l *Locations) Write(ctx context.Context, location string, data []byte) error {
	s, key, err := l.store(location)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	if err = s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	return nil
}

// Delete removes location.
func (l *Locations) Delete(ctx context.Context, location string) error {
	s, key, err := l.store(location)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	if err = s.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenLocation, location, err)
	}
	return nil
}
