package main

import (
	"context"
	"os"

	"github.com/yigit/campusauth/internal/bootstrap"
	"github.com/yigit/campusauth/internal/pkg/logger"
	"github.com/yigit/campusauth/internal/server"
)

// @title Campus Auth API
// @version 1.0
// @description Registration and authentication for student and administrator accounts

// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer(context.Background(), bootstrap.ConfigPath())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until SIGINT/SIGTERM
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
