package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Registry is the static set of zones known to the application.
// It is populated once at startup and only read afterwards.
type Registry struct {
	loaders map[ZoneKey]Loader
	order   []ZoneKey
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[ZoneKey]Loader),
	}
}

// Register adds a zone and its loader to the registry.
// It returns an error if the key is invalid, the loader is nil, or the key is already registered.
func (r *Registry) Register(key ZoneKey, loader Loader) error {
	if err := ValidateZoneKey(key); err != nil {
		return zerr.With(err, "zone", key.String())
	}
	if loader == nil {
		return zerr.With(ErrNilLoader, "zone", key.String())
	}
	if _, exists := r.loaders[key]; exists {
		return zerr.With(ErrZoneAlreadyRegistered, "zone", key.String())
	}
	r.loaders[key] = loader
	r.order = append(r.order, key)
	return nil
}

// Has reports whether key is a registered zone.
func (r *Registry) Has(key ZoneKey) bool {
	_, ok := r.loaders[key]
	return ok
}

// Loader returns the loader registered for key.
func (r *Registry) Loader(key ZoneKey) (Loader, bool) {
	l, ok := r.loaders[key]
	return l, ok
}

// Len returns the number of registered zones.
func (r *Registry) Len() int {
	return len(r.loaders)
}

// Keys returns the registered zone keys in sorted order.
func (r *Registry) Keys() []ZoneKey {
	keys := slices.Clone(r.order)
	slices.Sort(keys)
	return keys
}

// Walk returns an iterator that yields zones in registration order.
func (r *Registry) Walk() iter.Seq2[ZoneKey, Loader] {
	return func(yield func(ZoneKey, Loader) bool) {
		for _, key := range r.order {
			if !yield(key, r.loaders[key]) {
				return
			}
		}
	}
}
