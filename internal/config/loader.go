package config

import (
	"github.com/spf13/pflag"
)

// Load runs the full layering SPEC_FULL.md's config design calls for:
// compiled-in defaults, then startDir's .cloneradar.toml (searched up the
// directory tree), then CLONERADAR_-prefixed environment variables, then
// flags explicitly set on fs. Each later layer only touches a field its own
// source actually mentions — flagBindings' v.IsSet check is what lets a
// flag's pflag-registered default coexist with a TOML file's value instead
// of always winning.
func Load(startDir string, fs *pflag.FlagSet) (*Config, *FlagTracker, error) {
	cfg, err := NewTomlConfigLoader().LoadConfig(startDir)
	if err != nil {
		return nil, nil, err
	}

	tracker := NewFlagTracker()
	ApplyViper(NewViper(fs), cfg, tracker)

	return cfg, tracker, nil
}
