package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/stefank0/djangomon/internal/api"
	"github.com/stefank0/djangomon/internal/config"
	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/version"
)

func main() {
	logging.SetLevel(os.Getenv(constants.EnvLogLevel))
	logging.Info("battle-simulator starting", logging.Fields{"version": version.String()})
	adminToken := os.Getenv(constants.EnvAdminToken)
	if adminToken == "" {
		logging.Info("ADMIN_TOKEN not set; simulation endpoints are disabled", nil)
	}

	// Config path may be provided via BATTLE_CONFIG or defaults to
	// ./battle_config.json in the current working directory.
	cfg := loadConfigOrExit(config.Path())
	cat := loadCatalogOrExit(cfg.CatalogPath)
	repo := createRepositoryOrExit(cfg.DatabasePath, cat)
	eng := createEngineOrExit(repo, cfg.Engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := api.NewHub()
	handler := api.NewBattleHandler(ctx, repo, eng, hub, cfg.Tournament)

	router := gin.Default()
	api.RegisterRoutes(router, handler, adminToken)

	if err := serve(ctx, cfg.ServerAddress, router); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
