package domain

// DefaultContextCacheMax is the default bound of the quest context cache.
const DefaultContextCacheMax = 30

// ManifestFileName is the name of the waypoint manifest file.
const ManifestFileName = "waypoint.yaml"

// ZoneSpec describes one zone declared in the manifest.
type ZoneSpec struct {
	Key ZoneKey
	// BundlePath is the absolute path of the zone bundle.
	BundlePath string
}

// Manifest is the resolved runtime configuration.
type Manifest struct {
	// Root is the directory containing the manifest file.
	Root string
	// Development enables development-only diagnostics and hot reload.
	Development bool
	// BundleDir is the absolute directory bundles are resolved against.
	BundleDir string
	// QuestDir is the absolute directory quest documents are read from.
	QuestDir string
	// ContextCacheMax bounds the quest context cache.
	ContextCacheMax int
	// Zones are the declared zones in manifest order.
	Zones []ZoneSpec
	// Adjacency is the declared neighbor list per zone.
	Adjacency map[ZoneKey][]ZoneKey
}
