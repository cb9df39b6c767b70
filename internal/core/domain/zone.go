// Package domain contains the core domain models for zones, bundles and quest contexts.
package domain

import (
	"context"
	"regexp"
)

// NoZone is the zero ZoneKey. It stands for "no active zone".
const NoZone ZoneKey = ""

var validZoneKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ZoneKey identifies a selectable UI region and the bundle behind it.
// Validity is defined only by membership in a Registry.
type ZoneKey string

// String returns the key as a string.
func (k ZoneKey) String() string {
	return string(k)
}

// IsZero reports whether k is NoZone.
func (k ZoneKey) IsZero() bool {
	return k == NoZone
}

// ValidateZoneKey checks that a key is usable as a registry entry.
func ValidateZoneKey(k ZoneKey) error {
	if !validZoneKeyRegex.MatchString(string(k)) {
		return ErrInvalidZoneKey
	}
	return nil
}

// Bundle is the resource produced by a zone Loader.
type Bundle struct {
	// Key is the zone the bundle was loaded for.
	Key ZoneKey
	// Path is where the bundle was read from.
	Path string
	// Size is the bundle size in bytes.
	Size int64
	// Digest is a content fingerprint of the bundle.
	Digest string
	// Content is the raw bundle payload.
	Content []byte
}

// Loader produces the bundle of a single zone.
// Calling a Loader twice performs two independent fetches.
type Loader func(ctx context.Context) (*Bundle, error)
