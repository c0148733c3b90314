package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KingCuz/GrindLink/internal/api"
	"github.com/KingCuz/GrindLink/internal/config"
	"github.com/KingCuz/GrindLink/internal/logger"
	"github.com/KingCuz/GrindLink/internal/services"
	"github.com/KingCuz/GrindLink/internal/store"
	"github.com/KingCuz/GrindLink/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up the document store. A failed initialization is not fatal: the
	// server still comes up and serves static assets, while every data
	// endpoint fails fast with the captured startup error.
	var docStore store.Store
	sqliteStore, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize document store")
		docStore = store.Unavailable(err)
	} else {
		defer sqliteStore.Close()
		docStore = sqliteStore
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	assignmentService := services.NewAssignmentService(docStore, hub, cfg.AppNamespace)
	profileService := services.NewProfileService(docStore, hub, cfg.AppNamespace)

	// Set up router
	router := api.NewRouter(hub, assignmentService, profileService, cfg.AllowedOrigin, cfg.StaticDir)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
