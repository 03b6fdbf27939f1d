package mcp

import (
	"github.com/cloneradar/cloneradar/app"
	"github.com/cloneradar/cloneradar/domain"
	"github.com/cloneradar/cloneradar/internal/config"
	"github.com/cloneradar/cloneradar/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCloneUseCase assembles a fresh CloneUseCase over this dependency set's
// file reader, wired with the ecosystem's JSON-only output path since MCP
// responses are always marshaled, never written to a file or opened in a browser.
func (d *Dependencies) BuildCloneUseCase() *app.CloneUseCase {
	return app.NewCloneUseCase(
		service.NewCloneService(d.fileReader),
		d.fileReader,
		service.NewOutputFormatter(),
		service.NewConfigurationLoader(),
		service.NewFileOutputWriter(nil),
	)
}
