package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration and validates it.
// Search order: customPath -> ~/.frameloop/config.yaml ->
// ./configs/frameloop.yaml -> embedded default.
//
// A file only needs the sections it changes; everything else keeps the
// embedded default. A custom path that cannot be read or parsed is an
// error, while broken files found by the search are skipped.
func Load(customPath string) (Config, error) {
	cfg, err := embedded()
	if err != nil {
		return cfg, err
	}

	switch {
	case customPath != "":
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		cfg.Source = customPath

	default:
		for _, path := range searchPaths() {
			if loadInto(path, &cfg) {
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid %s: %w", cfg.Source, err)
	}
	return cfg, nil
}

func embedded() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), fmt.Errorf("config: cannot parse embedded defaults: %w", err)
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// loadInto overlays path onto cfg, leaving cfg untouched if the file is
// missing or malformed.
func loadInto(path string, cfg *Config) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	next := *cfg
	next.Bindings = make(map[string]map[string]string, len(cfg.Bindings))
	for k, v := range cfg.Bindings {
		next.Bindings[k] = v
	}
	if err := yaml.Unmarshal(data, &next); err != nil {
		return false
	}
	next.Source = path
	*cfg = next
	return true
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".frameloop", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", "frameloop.yaml"))
}
