// Package config loads the waypoint manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	Logger ports.Logger
	// Environ replaces the process environment when set.
	Environ map[string]string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds waypoint.yaml in cwd or the nearest parent and resolves it.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path, err := findManifest(cwd)
	if err != nil {
		return nil, err
	}

	var raw Manifest
	if err := readAndUnmarshalYAML(path, &raw); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	m, err := l.resolve(path, &raw)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if err := l.applyEnv(m); err != nil {
		return nil, err
	}

	return m, nil
}

func findManifest(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "cwd", cwd)
	}
	for {
		candidate := filepath.Join(currentDir, domain.ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) resolve(path string, raw *Manifest) (*domain.Manifest, error) {
	if raw.Version != "" && raw.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ManifestFileName, raw.Version, SupportedVersion))
	}

	root := filepath.Dir(path)
	m := &domain.Manifest{
		Root:            root,
		Development:     raw.Development,
		BundleDir:       resolveDir(root, raw.Bundles, "."),
		QuestDir:        resolveDir(root, raw.Quests, "quests"),
		ContextCacheMax: raw.ContextCache.Max,
		Adjacency:       make(map[domain.ZoneKey][]domain.ZoneKey, len(raw.Adjacency)),
	}
	if m.ContextCacheMax < 1 {
		m.ContextCacheMax = domain.DefaultContextCacheMax
	}

	zones, err := decodeZones(&raw.Zones, m.BundleDir)
	if err != nil {
		return nil, err
	}
	m.Zones = zones

	for from, neighbors := range raw.Adjacency {
		keys := make([]domain.ZoneKey, len(neighbors))
		for i, n := range neighbors {
			keys[i] = domain.ZoneKey(n)
		}
		m.Adjacency[domain.ZoneKey(from)] = keys
	}

	return m, nil
}

// decodeZones reads the zones mapping in declaration order.
func decodeZones(node *yaml.Node, bundleDir string) ([]domain.ZoneSpec, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "line", node.Line)
	}

	zones := make([]domain.ZoneSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := domain.ZoneKey(node.Content[i].Value)
		if err := domain.ValidateZoneKey(key); err != nil {
			return nil, zerr.With(err, "zone", key.String())
		}

		var dto ZoneDTO
		if err := node.Content[i+1].Decode(&dto); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "zone", key.String())
		}
		if dto.Bundle == "" {
			return nil, zerr.With(domain.ErrMissingBundlePath, "zone", key.String())
		}

		zones = append(zones, domain.ZoneSpec{
			Key:        key,
			BundlePath: resolveDir(bundleDir, dto.Bundle, ""),
		})
	}
	return zones, nil
}

func (l *Loader) applyEnv(m *domain.Manifest) error {
	ov := envOverrides{
		Development: m.Development,
		ContextMax:  m.ContextCacheMax,
		QuestsDir:   m.QuestDir,
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: l.Environ}
	if err := env.ParseWithOptions(&ov, opts); err != nil {
		return zerr.Wrap(err, domain.ErrConfigEnvFailed.Error())
	}

	m.Development = ov.Development
	if ov.ContextMax >= 1 {
		m.ContextCacheMax = ov.ContextMax
	}
	m.QuestDir = resolveDir(m.Root, ov.QuestsDir, "quests")
	return nil
}

// resolveDir resolves p against base, using fallback when p is empty.
func resolveDir(base, p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path comes from manifest discovery
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
