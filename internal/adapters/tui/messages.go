package tui

import "go.trai.ch/waypoint/internal/core/domain"

// MsgRedraw asks the explorer to re-read the active zone.
type MsgRedraw struct{}

// MsgActivity reports a traced operation starting or ending.
type MsgActivity struct {
	Operation string
	Subject   string
	Done      bool
	Err       error
}

// MsgBundleLoaded carries the outcome of waiting for the active zone's bundle.
type MsgBundleLoaded struct {
	Key    domain.ZoneKey
	Bundle *domain.Bundle
	Err    error
}
