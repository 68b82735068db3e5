package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/INikonI/steam-giveaway-tool/internal/app"
	"github.com/INikonI/steam-giveaway-tool/internal/env"
	"github.com/INikonI/steam-giveaway-tool/internal/localdb"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/paths"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"github.com/INikonI/steam-giveaway-tool/internal/version"
	"github.com/INikonI/steam-giveaway-tool/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	logger.Info("Starting steam-giveaway-tool server", zap.String("version", version.String()))

	env.LoadEnv()
	if env.Value.DebugMode {
		logger.Init(true)
		logger.Info("Debug mode enabled")
	}

	dbPath := paths.GetDBPath()
	if env.Value.DBPath != nil {
		dbPath = *env.Value.DBPath
	} else if err := paths.EnsureDataDirs(); err != nil {
		logger.Fatal("Failed to ensure data directories", zap.Error(err))
	}

	if _, err := localdb.SetupDB(dbPath); err != nil {
		logger.Fatal("Failed to setup database", zap.Error(err))
	}

	initialToken := ""
	if env.Value.AccessToken != nil {
		initialToken = *env.Value.AccessToken
	}

	steam := steamapi.NewClient()
	core := app.New(steam, initialToken)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go core.Run(ctx)

	core.StartUpdateCheck()

	port := env.Value.ServerPort
	if err := webserver.StartWebServer(port, core); err != nil {
		logger.Fatal("Failed to start web server", zap.Error(err))
	}

	logger.Info("Server started",
		zap.Int("port", port),
		zap.String("api", fmt.Sprintf("http://localhost:%d/api/status", port)))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	cancel()
	webserver.Shutdown()

	logger.Info("Shutdown complete")
}
