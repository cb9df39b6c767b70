// Package router turns candidate zone keys into active-zone writes and
// warms the bundles of adjacent zones.
package router

import (
	"context"
	"fmt"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
)

// Prefetcher starts a background load for a zone.
type Prefetcher interface {
	Prefetch(ctx context.Context, key domain.ZoneKey)
}

// ActiveZone is the part of the active-zone store the router reads and writes.
type ActiveZone interface {
	ActiveKey() domain.ZoneKey
	SetActiveKey(key domain.ZoneKey)
}

// Router validates candidate keys, commits them and prefetches neighbors.
type Router struct {
	registry    *domain.Registry
	graph       *domain.AdjacencyGraph
	prefetcher  Prefetcher
	store       ActiveZone
	host        ports.Host
	logger      ports.Logger
	development bool
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger and whether development warnings are emitted.
func WithLogger(l ports.Logger, development bool) Option {
	return func(r *Router) {
		r.logger = l
		r.development = development
	}
}

// New creates a Router.
func New(
	registry *domain.Registry,
	graph *domain.AdjacencyGraph,
	prefetcher Prefetcher,
	store ActiveZone,
	host ports.Host,
	opts ...Option,
) *Router {
	r := &Router{
		registry:   registry,
		graph:      graph,
		prefetcher: prefetcher,
		store:      store,
		host:       host,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a candidate to a registered zone key, or domain.NoZone.
func (r *Router) Resolve(candidate domain.ZoneKey) domain.ZoneKey {
	if candidate.IsZero() {
		return domain.NoZone
	}
	if !r.registry.Has(candidate) {
		r.warn(fmt.Sprintf("zone %q is not registered", candidate))
		return domain.NoZone
	}
	return candidate
}

// Sync re-evaluates the router for a candidate key.
//
// Nothing happens outside a client context or while disabled. Otherwise the
// candidate is validated and written to the store if it differs from the active
// zone. Neighbors of the active zone are then prefetched, unless the host is
// hidden. Disabling never clears the store.
func (r *Router) Sync(ctx context.Context, candidate domain.ZoneKey, enabled bool) {
	if r.host == nil || !r.host.Available() || !enabled {
		return
	}

	resolved := r.Resolve(candidate)
	if resolved != r.store.ActiveKey() {
		r.store.SetActiveKey(resolved)
	}

	if !r.host.Visible() {
		return
	}
	r.prefetchNeighbors(ctx, r.store.ActiveKey())
}

func (r *Router) prefetchNeighbors(ctx context.Context, active domain.ZoneKey) {
	if active.IsZero() {
		return
	}
	for _, neighbor := range r.graph.Neighbors(active) {
		if !r.registry.Has(neighbor) {
			r.warn(fmt.Sprintf("neighbor %q of zone %q is not registered", neighbor, active))
			continue
		}
		r.prefetcher.Prefetch(ctx, neighbor)
	}
}

func (r *Router) warn(msg string) {
	if r.development && r.logger != nil {
		r.logger.Warn(msg)
	}
}
