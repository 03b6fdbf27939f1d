package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadEmbeddedConfig reads path (any TOML file, not necessarily named
// .cloneradar.toml) and returns the configuration found under its
// [tool.cloneradar] table, merged onto DefaultConfig. It exists for projects
// that keep one shared TOML file for several tools' settings rather than a
// dedicated .cloneradar.toml — the file itself is never searched for by
// name; the caller already knows its path.
func LoadEmbeddedConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), nil
	}

	var embedded embeddedTable
	if err := toml.Unmarshal(data, &embedded); err != nil {
		return nil, err
	}

	merged := DefaultConfig()
	if embedded.Tool.Cloneradar != nil {
		mergeConfigs(merged, embedded.Tool.Cloneradar)
	}
	return merged, nil
}
