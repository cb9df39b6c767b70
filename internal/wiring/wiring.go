// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/waypoint/internal/adapters/config"
	_ "go.trai.ch/waypoint/internal/adapters/logger"
	_ "go.trai.ch/waypoint/internal/adapters/metrics"
	// Register app nodes.
	_ "go.trai.ch/waypoint/internal/app"
)
