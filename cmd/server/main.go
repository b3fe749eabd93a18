package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anvaya/replen/internal/api"
	"github.com/anvaya/replen/internal/cache"
	"github.com/anvaya/replen/internal/config"
	"github.com/anvaya/replen/internal/ingest"
	"github.com/anvaya/replen/internal/service"
	"github.com/anvaya/replen/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	planCache, err := cache.NewPlanCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize plan cache")
	}

	client := ingest.NewSheetClient(time.Duration(cfg.Sources.FetchTimeoutSecs) * time.Second)
	loader := ingest.NewSheetLoader(client, ingest.SourceURLs{
		Sales:        cfg.Sources.SalesURL,
		FCStock:      cfg.Sources.FCStockURL,
		CentralStock: cfg.Sources.CentralStockURL,
		Remarks:      cfg.Sources.RemarksURL,
	})

	planService := service.NewPlanService(loader, planCache)

	router := api.NewRouter(planService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
