package config

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// Presets returns the names of all embedded presets, sorted.
func Presets() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overlays a named preset onto the config and revalidates.
// Presets only contain the fields they change; everything else keeps its
// current value.
func (c *Config) ApplyPreset(name string) error {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return fmt.Errorf("unknown preset %q (have: %s)", name, strings.Join(Presets(), ", "))
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing preset %q: %w", name, err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	c.computeDerived()
	c.Derived.Preset = name
	return nil
}
