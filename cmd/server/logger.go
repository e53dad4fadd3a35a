package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/genops-api/internal/config"
	"github.com/phrazzld/genops-api/internal/platform/logger"
)

// setupAppLogger configures the application logger from the server config.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"auto_migrate", cfg.Database.AutoMigrate)
	return l, nil
}
