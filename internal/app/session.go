package app

import (
	"context"

	"go.trai.ch/waypoint/internal/adapters/bundle"
	"go.trai.ch/waypoint/internal/adapters/telemetry"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/waypoint/internal/engine/store"
	"go.trai.ch/zerr"
)

// session is the engine state for one command: the registry and graph built
// from the manifest, the bundle cache and the active-zone store.
type session struct {
	manifest *domain.Manifest
	registry *domain.Registry
	graph    *domain.AdjacencyGraph
	provider *telemetry.Provider
	zones    *loader.ZoneCache
	store    *store.Store
}

func (a *App) loadManifest() (*domain.Manifest, error) {
	manifest, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return manifest, nil
}

func buildRegistry(manifest *domain.Manifest) (*domain.Registry, error) {
	registry := domain.NewRegistry()
	if err := bundle.NewSource().Register(registry, manifest.Zones); err != nil {
		return nil, zerr.Wrap(err, "failed to build zone registry")
	}
	return registry, nil
}

// openSession builds the engine for one command. Headless sessions have no
// render host to report load activity to, so bundle loads are not traced.
func (a *App) openSession(headless bool) (*session, error) {
	manifest, err := a.loadManifest()
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(manifest)
	if err != nil {
		return nil, err
	}

	provider := telemetry.NewProvider()
	var tracer ports.Tracer = provider.Tracer()
	if headless {
		tracer = telemetry.NewNoOpTracer()
	}
	zones := loader.NewZoneCache(registry,
		loader.WithLogger(a.logger),
		loader.WithDevelopment(manifest.Development),
		loader.WithTracer(tracer),
		loader.WithRecorder(a.metrics),
	)

	return &session{
		manifest: manifest,
		registry: registry,
		graph:    domain.NewAdjacencyGraph(manifest.Adjacency),
		provider: provider,
		zones:    zones,
		store:    store.New(store.WithLogger(a.logger, manifest.Development)),
	}, nil
}

func (s *session) close(ctx context.Context) {
	_ = s.provider.Shutdown(context.WithoutCancel(ctx))
}
