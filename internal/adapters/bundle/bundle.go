// Package bundle provides the file-backed zone loader.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/zerr"
)

// Source reads zone bundles from the filesystem.
type Source struct {
	readFile func(string) ([]byte, error)
}

// NewSource creates a Source reading from the local filesystem.
func NewSource() *Source {
	return &Source{readFile: os.ReadFile}
}

// NewSourceFS creates a Source reading from fsys. Paths are passed to fsys as is.
func NewSourceFS(fsys fs.FS) *Source {
	return &Source{readFile: func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	}}
}

// Loader returns the domain.Loader for one zone. Every call of the returned
// loader reads the file again.
func (s *Source) Loader(spec domain.ZoneSpec) domain.Loader {
	return func(ctx context.Context) (*domain.Bundle, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.read(spec)
	}
}

func (s *Source) read(spec domain.ZoneSpec) (*domain.Bundle, error) {
	data, err := s.readFile(spec.BundlePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrBundleNotFound, "path", spec.BundlePath)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBundleReadFailed.Error()), "path", spec.BundlePath)
	}

	return &domain.Bundle{
		Key:     spec.Key,
		Path:    spec.BundlePath,
		Size:    int64(len(data)),
		Digest:  Digest(data),
		Content: data,
	}, nil
}

// Digest fingerprints bundle content as a 16 character hex string.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Register builds a registry entry for every zone in specs, in order.
func (s *Source) Register(registry *domain.Registry, specs []domain.ZoneSpec) error {
	for _, spec := range specs {
		if err := registry.Register(spec.Key, s.Loader(spec)); err != nil {
			return err
		}
	}
	return nil
}
