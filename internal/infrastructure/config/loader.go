package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Config holds all loaded configurations
type Config struct {
	Game     *GameConfig
	Manifest *Manifest
}

// Loader loads configuration from JSON files using fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadGame loads game.json, filling unset display values with defaults.
func (l *Loader) LoadGame() (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := l.readJSON("game.json", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadManifest loads and validates manifest.json
func (l *Loader) LoadManifest() (*Manifest, error) {
	var m Manifest
	if err := l.readJSON("manifest.json", &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest.json: %w", err)
	}
	return &m, nil
}

// LoadAll loads every configuration file
func (l *Loader) LoadAll() (*Config, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	manifest, err := l.LoadManifest()
	if err != nil {
		return nil, err
	}

	return &Config{
		Game:     game,
		Manifest: manifest,
	}, nil
}
