package loader

import "go.trai.ch/waypoint/internal/core/domain"

// ZoneCache is the loader cache for zone bundles.
type ZoneCache = Cache[domain.ZoneKey, *domain.Bundle]

// NewZoneCache creates a ZoneCache resolving loaders from registry.
func NewZoneCache(registry *domain.Registry, opts ...Option) *ZoneCache {
	return New[domain.ZoneKey, *domain.Bundle](func(key domain.ZoneKey) (Load[*domain.Bundle], bool) {
		l, ok := registry.Loader(key)
		if !ok {
			return nil, false
		}
		return Load[*domain.Bundle](l), true
	}, opts...)
}
