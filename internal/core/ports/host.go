package ports

// Host describes the client execution context the zone router runs in.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// Available reports whether a render surface exists at all.
	// When it returns false the router performs no work.
	Available() bool
	// Visible reports whether the render surface is currently shown to the user.
	// Speculative prefetching is skipped while it returns false.
	Visible() bool
}
