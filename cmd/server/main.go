package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-profile-service/internal/config"     // Internal config loader
	"github.com/iliyamo/user-profile-service/internal/database"   // MySQL pool + schema bootstrap
	"github.com/iliyamo/user-profile-service/internal/handler"    // HTTP handlers
	"github.com/iliyamo/user-profile-service/internal/logger"     // structured logger
	"github.com/iliyamo/user-profile-service/internal/middleware" // request logging, profile cache
	"github.com/iliyamo/user-profile-service/internal/repository" // user repository
	"github.com/iliyamo/user-profile-service/internal/router"     // Internal router setup
	"github.com/iliyamo/user-profile-service/internal/storage"    // avatar file store
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config
	slg := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis is optional; a nil client disables the profile read cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		slg.Warn("redis unavailable, profile cache disabled")
	}
	cache := middleware.NewProfileCache(config.LoadProfileCacheConfig(), rdb, slg)

	users := repository.NewUserRepo(db)
	images := storage.NewImageStore(cfg.UploadDir)
	auth := handler.NewAuthHandler(cfg, users, images, cache, slg)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.RequestLogger(slg))

	router.RegisterRoutes(e, cfg.UploadDir)          // health check + static uploads
	router.RegisterAuth(e, auth, cache, cfg.JWTSecret) // auth and profile routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
