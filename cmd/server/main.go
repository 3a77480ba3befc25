package main // Entry point package

import (
	"context" // Startup context for the initial document load
	"log"     // Logging library
	"os"      // Environment toggles for optional subsystems

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/urbanchill/cafe-console/internal/auth"
	"github.com/urbanchill/cafe-console/internal/config"
	"github.com/urbanchill/cafe-console/internal/database"
	"github.com/urbanchill/cafe-console/internal/handler"
	"github.com/urbanchill/cafe-console/internal/middleware"
	"github.com/urbanchill/cafe-console/internal/queue"
	"github.com/urbanchill/cafe-console/internal/repository"
	"github.com/urbanchill/cafe-console/internal/router"
	queue_publisher "github.com/urbanchill/cafe-console/internal/service"
	"github.com/urbanchill/cafe-console/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	// Durable document storage: MySQL when configured, in-memory otherwise.
	var docs repository.DocumentStore
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := database.EnsureSchema(db); err != nil {
			log.Fatalf("database schema: %v", err)
		}
		docs = repository.NewDocumentRepo(db)
	} else {
		log.Println("DB_HOST not set; documents are held in memory and lost on restart")
		docs = repository.NewMemoryDocumentStore()
	}

	// Redis backs sessions, rate limiting and the public response cache.
	// A nil client switches all three to their degraded modes.
	rdb := config.NewRedisClient()
	var sessions repository.SessionStore
	if rdb != nil {
		sessions = repository.NewRedisSessionStore(rdb)
	} else {
		log.Println("redis unavailable; sessions are held in memory, cache and rate limiting disabled")
		sessions = repository.NewMemorySessionStore()
	}

	mgr, err := auth.NewManager(docs, sessions, cfg.JWTSecret, cfg.BcryptCost,
		cfg.SessionTTL, cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	st := store.New(docs)
	st.Load(context.Background()) // replace compiled-in defaults with persisted overrides

	// Content-change events are best effort; EVENTS_ENABLED=false turns the
	// broker integration off entirely for standalone demos.
	var publish handler.EventPublisher
	cacheCfg := config.LoadCacheConfig()
	if os.Getenv("EVENTS_ENABLED") != "false" {
		publish = queue_publisher.PublishContentUpdated
		go func() {
			if err := queue.StartContentConsumer(queue_publisher.BrokerURL(), queue.ConsumerDeps{
				Redis:       rdb,
				CachePrefix: cacheCfg.Prefix,
			}); err != nil {
				log.Printf("content-consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil && cacheCfg.Enabled {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(mgr), mgr)
	router.RegisterPublic(e, handler.NewPublicHandler(st), cacheMW)
	router.RegisterAdmin(e, mgr,
		handler.NewAdminBusinessHandler(st, publish),
		handler.NewAdminMenuHandler(st, publish),
		handler.NewSettingsHandler(st, docs, publish))

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
