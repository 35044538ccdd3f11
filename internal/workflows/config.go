package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kete/internal/configs"
)

// ConfigInitOptions configures the config init workflow.
type ConfigInitOptions struct {
	// Path is where to write the config. Empty uses the default location.
	Path string

	// Force replaces an existing config file.
	Force bool
}

// ConfigInitResult contains the outcome of a config init operation.
type ConfigInitResult struct {
	Path   string
	Config *configs.Config
}

// ConfigInit writes a config file populated with the defaults.
//
// Returns ErrConfigExists if the file exists and Force is not set.
func ConfigInit(ctx context.Context, opts ConfigInitOptions) (*ConfigInitResult, error) {
	path := opts.Path
	if path == "" {
		defaultPath, err := configs.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		path = defaultPath
	}

	config, err := configs.InitConfig(path, opts.Force)
	if err != nil {
		return nil, err
	}

	return &ConfigInitResult{Path: path, Config: config}, nil
}
