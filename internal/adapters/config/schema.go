package config

import "gopkg.in/yaml.v3"

// Manifest is the on-disk structure of waypoint.yaml.
type Manifest struct {
	Version      string              `yaml:"version"`
	Development  bool                `yaml:"development"`
	Bundles      string              `yaml:"bundles"`
	Quests       string              `yaml:"quests"`
	ContextCache ContextCacheDTO     `yaml:"contextCache"`
	Zones        yaml.Node           `yaml:"zones"`
	Adjacency    map[string][]string `yaml:"adjacency"`
}

// ContextCacheDTO configures the quest context cache.
type ContextCacheDTO struct {
	Max int `yaml:"max"`
}

// ZoneDTO is one entry of the zones mapping.
type ZoneDTO struct {
	Bundle string `yaml:"bundle"`
}

// envOverrides are applied on top of the manifest. Fields keep their
// manifest value when the variable is unset.
type envOverrides struct {
	Development bool   `env:"DEVELOPMENT"`
	ContextMax  int    `env:"CONTEXT_MAX"`
	QuestsDir   string `env:"QUESTS_DIR"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WAYPOINT_"

// SupportedVersion is the manifest version this loader understands.
const SupportedVersion = "1"
