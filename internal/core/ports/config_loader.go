package ports

import "go.trai.ch/waypoint/internal/core/domain"

// ConfigLoader defines the interface for loading the waypoint manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the manifest starting at cwd and walking up, and returns it resolved.
	Load(cwd string) (*domain.Manifest, error)
}
