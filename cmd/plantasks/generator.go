package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/dailyplan-api/internal/config"
	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/platform/gemini"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
)

// generatorFactory builds the generator for a command run. Logs go to stderr.
type generatorFactory func(opts *rootOptions, stderr io.Writer) (generation.Generator, *slog.Logger, error)

func defaultGeneratorFactory(opts *rootOptions, stderr io.Writer) (generation.Generator, *slog.Logger, error) {
	log := logger.New(stderr, opts.logLevel)

	cfg, err := config.LoadLLM(config.Options{ConfigFile: opts.configFile, EnvFile: opts.envFile})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	gen, err := gemini.NewGenerator(log, *cfg, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize task generator: %w", err)
	}
	return gen, log, nil
}
