package mcp

import (
	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/config"
)

func NewTestDependencies(fr domain.FileReader, cfg *config.Config, path string) *Dependencies {
	return &Dependencies{
		fileReader: fr,
		config:     cfg,
		configPath: path,
	}
}
