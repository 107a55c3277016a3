package main

import (
	"context"
	"flag"
	"os"

	"github.com/yigit/supervision/internal/bootstrap"
	"github.com/yigit/supervision/internal/pkg/logger"
	"github.com/yigit/supervision/internal/server"
)

// @title Internship Supervision API
// @version 1.0
// @description Zone assignment, supervisor workload and presence verification for internship supervision

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"

// @securityDefinitions.apikey AppID
// @in header
// @name X-App-ID

// @securityDefinitions.apikey AppKey
// @in header
// @name X-App-Key

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(context.Background(), *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
