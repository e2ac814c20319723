package main

import (
	"github.com/mirae-dev/ShoreBot_Go/internal/config"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "shorebot-api",
		Environment: cfg.Environment,
	})
}
