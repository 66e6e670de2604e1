// Package config holds fern's configuration: which data source feeds the
// tree, where expand/collapse state is persisted, and which tree identity
// it is persisted under.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source type names.
const (
	SourceStatic = "static"
	SourceRemote = "remote"
)

// State backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ConfigDirName is the per-project configuration/state directory.
const ConfigDirName = ".fern"

// ConfigFileName is the config file looked up inside ConfigDirName.
const ConfigFileName = "config.yaml"

// Config represents a fern configuration file (.fern/config.yaml).
type Config struct {
	// Source selects and configures the data provider
	Source SourceConfig `yaml:"source"`

	// State configures expand/collapse persistence
	State StateConfig `yaml:"state,omitempty"`

	// TreeID distinguishes independently persisted trees (default: "main")
	TreeID string `yaml:"tree_id,omitempty"`
}

// SourceConfig selects the data provider.
type SourceConfig struct {
	// Type is "static" (JSON document) or "remote" (listing service)
	Type string `yaml:"type"`

	// Document is the JSON document path (static source)
	Document string `yaml:"document,omitempty"`

	// BaseURL is the listing service base URL (remote source)
	BaseURL string `yaml:"base_url,omitempty"`

	// Watch reloads the static document when it changes on disk
	Watch bool `yaml:"watch,omitempty"`
}

// StateConfig configures persistence of the expand/collapse tree.
type StateConfig struct {
	// Backend is "file" (default), "sqlite", or "memory"
	Backend string `yaml:"backend,omitempty"`

	// Dir is the state directory (default: the .fern directory)
	Dir string `yaml:"dir,omitempty"`
}

// Default returns a config with defaults applied.
func Default() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.TreeID == "" {
		c.TreeID = "main"
	}
	if c.State.Backend == "" {
		c.State.Backend = BackendFile
	}
	if c.State.Dir == "" {
		c.State.Dir = ConfigDirName
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceStatic:
		if c.Source.Document == "" {
			return fmt.Errorf("static source requires a document path")
		}
	case SourceRemote:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("remote source requires a base URL")
		}
	case "":
		return fmt.Errorf("source type is required (static or remote)")
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}

	switch c.State.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	return nil
}

// LoadFile reads and parses a config file, applying defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadProject loads .fern/config.yaml from the given project root.
func LoadProject(root string) (Config, error) {
	return LoadFile(filepath.Join(root, ConfigDirName, ConfigFileName))
}
