package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/waypoint/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/waypoint/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/waypoint/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/waypoint/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[*metrics.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, log, m), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			metrics.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[*metrics.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
		Metrics:      m,
	}, nil
}
