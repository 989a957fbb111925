package main

import (
	"os"
	"os/signal"
	"syscall"

	"wealthwise-backend/internal/app"
	"wealthwise-backend/internal/cache"
	"wealthwise-backend/internal/config"
	"wealthwise-backend/internal/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}
	log.Info().Msg("Database connected")

	cacheSvc := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if cacheSvc.Rdb != nil {
		log.Info().Msg("Redis connected")
	}

	fiberApp, sched := app.CreateApp(cfg, db, cacheSvc)

	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("Scheduler start failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server running")
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	sched.Stop()
	if err := fiberApp.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
}
