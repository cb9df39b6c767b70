package app

import (
	"context"
	"fmt"

	"go.trai.ch/waypoint/internal/adapters/telemetry"
	"go.trai.ch/waypoint/internal/adapters/tui"
	"go.trai.ch/waypoint/internal/adapters/watcher"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/router"
	"golang.org/x/sync/errgroup"
)

// ExploreOptions configuration for the Explore method.
type ExploreOptions struct {
	// NoPrefetch skips warming the neighbors of the visited zone.
	NoPrefetch bool
	// Start is visited before the explorer opens. It may be empty.
	Start string
}

// Explore runs the interactive zone explorer until the user quits. In
// development the bundle directory is watched and changed zones reload.
func (a *App) Explore(ctx context.Context, opts ExploreOptions) error {
	s, err := a.openSession(false)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	focus := &tui.Focus{}
	var prefetcher router.Prefetcher = s.zones
	if opts.NoPrefetch {
		prefetcher = noPrefetch{}
	}
	r := router.New(s.registry, s.graph, prefetcher, s.store, focus,
		router.WithLogger(a.logger, s.manifest.Development))

	if opts.Start != "" {
		r.Sync(ctx, domain.ZoneKey(opts.Start), true)
	}

	keys := make([]domain.ZoneKey, 0, len(s.manifest.Zones))
	for _, spec := range s.manifest.Zones {
		keys = append(keys, spec.Key)
	}
	model := tui.NewModel(ctx, keys, r, s.zones, s.store, focus)
	host := tui.NewHost(model, a.out, a.teaOptions...)
	host.Bind(s.store)
	s.provider.Register(telemetry.NewBridge(host))

	g, gctx := errgroup.WithContext(ctx)

	if s.manifest.Development {
		w, err := a.newWatcher()
		if err != nil {
			return err
		}
		reloader := watcher.NewReloader(s.manifest.Zones, s.zones, a.logger,
			watcher.WithOnReload(func([]domain.ZoneKey) { s.store.Invalidate() }))
		g.Go(func() error {
			defer func() { _ = w.Stop() }()
			if err := reloader.Run(gctx, w, s.manifest.BundleDir); err != nil {
				a.logger.Warn(fmt.Sprintf("hot reload disabled: %v", err))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return host.Run()
	})

	return g.Wait()
}
