package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/waypoint/internal/core/domain"
)

// Graph prints the registered zones, their adjacency and any neighbor
// references that point at unregistered zones.
func (a *App) Graph(_ context.Context, w io.Writer) error {
	manifest, err := a.loadManifest()
	if err != nil {
		return err
	}
	registry, err := buildRegistry(manifest)
	if err != nil {
		return err
	}
	graph := domain.NewAdjacencyGraph(manifest.Adjacency)

	width := 0
	paths := make(map[domain.ZoneKey]string, len(manifest.Zones))
	for _, spec := range manifest.Zones {
		width = max(width, len(spec.Key))
		paths[spec.Key] = displayPath(manifest.Root, spec.BundlePath)
	}

	_, _ = fmt.Fprintf(w, "zones (%d)\n", registry.Len())
	for key := range registry.Walk() {
		_, _ = fmt.Fprintf(w, "  %-*s  %s\n", width, key, paths[key])
	}

	if sources := graph.Sources(); len(sources) > 0 {
		_, _ = fmt.Fprintln(w, "\nadjacency")
		for _, from := range sources {
			neighbors := graph.Neighbors(from)
			names := make([]string, len(neighbors))
			for i, n := range neighbors {
				names[i] = n.String()
			}
			_, _ = fmt.Fprintf(w, "  %s → %s\n", from, strings.Join(names, ", "))
		}
	}

	if dangling := graph.Dangling(registry); len(dangling) > 0 {
		_, _ = fmt.Fprintln(w, "\ndangling")
		for _, d := range dangling {
			_, _ = fmt.Fprintf(w, "  %s → %s\n", d.From, d.To)
		}
	}

	return nil
}

// displayPath shows p relative to root when it lies below it.
func displayPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}
