package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/logging"
	"portfolio/internal/projects"
)

// loadSettings reads the config file, applies the command-line overrides and
// opens the logger and the project catalog.
func loadSettings(cmd *cobra.Command) (*config.Config, *zap.Logger, *projects.Catalog, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	log, err := logging.New(cfg.Logging.File, cfg.Logging.Level, verbose)
	if err != nil {
		return nil, nil, nil, err
	}

	catalog, err := projects.Load(cfg.Data.Projects)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load projects: %w", err)
	}
	log.Debug("settings loaded",
		zap.String("config", configPath),
		zap.String("projects", catalog.Source()),
		zap.Int("count", catalog.Len()))
	return cfg, log, catalog, nil
}

// applyFlags lets explicitly set flags win over the file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Projects = dataPath
	}
	if flags.Changed("seed") {
		cfg.Render.Seed = seed
	}
}
