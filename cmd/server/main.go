package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/weather-caddie/internal/api"
	"github.com/stitts-dev/weather-caddie/internal/api/handlers"
	"github.com/stitts-dev/weather-caddie/internal/app"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/internal/utils"
	"github.com/stitts-dev/weather-caddie/pkg/config"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	caddieApp, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize caddie: %v", err)
	}
	defer caddieApp.Close()

	// Background weather warm-up
	var warmer *services.WeatherWarmer
	if cfg.EnableBackgroundJobs {
		warmer = services.NewWeatherWarmer(caddieApp.Weather, cfg.WeatherWarmSchedule, cfg.ExternalAPITimeout*2, log)
		if err := warmer.Start(); err != nil {
			log.Errorf("Failed to start weather warmer: %v", err)
			warmer = nil
		} else {
			go warmer.RunOnce()
			defer warmer.Stop()
		}
	}

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(context.Context) error { return caddieApp.DB.HealthCheck() }),
		"cache":    caddieApp.Cache,
	}
	var warmStatus handlers.WarmStatus
	if warmer != nil {
		warmStatus = warmer
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestID())
	router.Use(utils.AccessLog())

	api.SetupRoutes(router, api.Dependencies{
		Course:       caddieApp.Course,
		Coefficients: caddieApp.Coefficients,
		Weather:      caddieApp.Weather,
		Advice:       caddieApp.Advice,
		Profiles:     caddieApp.Profiles,
		Preferences:  caddieApp.Preferences,
		Rounds:       caddieApp.Rounds,
		Chat:         caddieApp.Chat,
		Health:       handlers.NewHealthHandler(checks, warmStatus),
	})

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
