// Copyright © 2024 Galvanized Logic Inc.

// Package assets loads optional yaml sidecar files that override the
// renderer's built-in §4.1 defaults, the same "read yaml, fall back to
// defaults on absence" shape the engine uses for shader descriptions.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderConfig overrides the CPU backend's §4.1 parameters and the
// CLI's output resolution. Zero fields mean "use the built-in
// default".
type RenderConfig struct {
	PhotonCount int    `yaml:"photon_count"`
	MaxBounces  int    `yaml:"max_bounces"`
	K           int    `yaml:"k"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Output      string `yaml:"output"`
}

// LoadRenderConfig reads "<scenePath minus extension>.render.yaml" if
// it exists, returning a zero-value RenderConfig (all defaults) if it
// does not.
func LoadRenderConfig(scenePath string) (*RenderConfig, error) {
	ext := filepath.Ext(scenePath)
	sidecar := strings.TrimSuffix(scenePath, ext) + ".render.yaml"

	data, err := os.ReadFile(sidecar)
	if os.IsNotExist(err) {
		return &RenderConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assets: reading %s: %w", sidecar, err)
	}

	var cfg RenderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("assets: parsing %s: %w", sidecar, err)
	}
	return &cfg, nil
}
