package main

import (
	"context"  // context package is needed for Redis and seeding
	"errors"   // Sentinel error matching
	"log"      // log package is needed for logging

	"burn_tracker/internal/ai"     // Custom package for the audit collaborator
	"burn_tracker/internal/api"    // Custom package for API handlers
	"burn_tracker/internal/chain"  // Custom package for the chain reader
	"burn_tracker/internal/config" // Custom package for configuration
	"burn_tracker/internal/ledger" // Custom package for the burn pipeline
	"burn_tracker/internal/store"  // Ledger store interface
	"burn_tracker/internal/store/gormstore" // SQL-backed store
	"burn_tracker/internal/store/memory"    // In-memory store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Select the ledger store backend
	var st store.Store
	switch cfg.StoreBackend {
	case "mysql":
		// Setup Data Source Name (DSN) and connect to the database
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		st = gormstore.New(db)
	case "memory":
		st = memory.New()
	default:
		logrus.Fatalf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	// Setup Redis client; an empty address disables caching
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Setup the chain reader
	reader, err := chain.NewClient(cfg.RPCURL, cfg.TokenAddress, cfg.BurnAddress, cfg.PriceAPIURL, cfg.HolderAPIURL)
	if err != nil {
		logrus.Fatalf("failed to connect to chain RPC: %v", err)
	}

	// Seed the statistics history so the first burn has a snapshot to update
	if _, err := st.LatestTokenStats(context.Background()); errors.Is(err, store.ErrNotFound) {
		if _, err := st.AppendTokenStats(context.Background(), cfg.SeedSupply, cfg.SeedBurned, cfg.SeedPrice, cfg.SeedHolders); err != nil {
			logrus.Fatalf("failed to seed token stats: %v", err)
		}
		logrus.WithFields(logrus.Fields{
			"total_supply": cfg.SeedSupply,
			"burned":       cfg.SeedBurned,
		}).Info("Seeded initial token stats")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Wire handlers with their dependencies
	api.RegisterRoutes(r, api.Deps{
		Store:     st,
		Recorder:  ledger.NewRecorder(st),
		Stats:     ledger.NewStatsService(st, reader, cfg.StatsTTL, ledger.DefaultRefreshTimeout),
		Reader:    reader,
		Auditor:   ai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel),
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
	})

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
