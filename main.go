package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cocomanthra_server/api"
	"cocomanthra_server/config"
	"cocomanthra_server/database"
	"cocomanthra_server/notify"
	"cocomanthra_server/services"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := database.GetInstance()
	repo := database.NewCatalogRepository(db)

	cacheService := services.NewCacheService(logger, cfg)

	catalog := store.New(repo, store.Options{
		Logger:      logger,
		Listener:    newChangeListener(ctx, cacheService),
		Publisher:   changePublisher(repo, cacheService),
		LoadTimeout: cfg.Catalog.LoadTimeout,
	})

	sm := services.NewServiceManager(logger, cfg, db, catalog)

	catalog.Run(ctx)

	// Setup graceful shutdown BEFORE starting the server
	setupGracefulShutdown(cancel, catalog, sm)

	r := api.App(catalog, sm)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// newChangeListener builds the change-notification listener selected by
// NOTIFY_BACKEND. A failed setup degrades to manual refresh only, it never
// blocks startup.
func newChangeListener(ctx context.Context, cacheService *services.CacheService) notify.Listener {
	switch cfg.Notify.Backend {
	case "postgres":
		listener, err := notify.NewPostgresListener(ctx, database.DSN(), notify.WatchedTables(), logger)
		if err != nil {
			logger.Warn("Postgres change listener unavailable, live updates disabled",
				gecho.Field("error", err))
			return nil
		}
		return listener
	case "redis":
		listener, err := notify.NewRedisListener(ctx, cacheService.Client(), cfg.Notify.ChannelPrefix, notify.WatchedTables(), logger)
		if err != nil {
			logger.Warn("Redis change listener unavailable, live updates disabled",
				gecho.Field("error", err))
			return nil
		}
		return listener
	case "off":
		return nil
	default:
		logger.Warn("Unknown notify backend, live updates disabled",
			gecho.Field("backend", cfg.Notify.Backend))
		return nil
	}
}

// changePublisher picks how local writes reach other instances. With the
// postgres backend the repository fires pg_notify; with redis the cache
// service publishes on the change channels.
func changePublisher(repo *database.CatalogRepository, cacheService *services.CacheService) store.ChangePublisher {
	switch cfg.Notify.Backend {
	case "postgres":
		return repo
	case "redis":
		return cacheService
	default:
		return nil
	}
}

// setupGracefulShutdown sets up signal handling for graceful application shutdown
func setupGracefulShutdown(cancel context.CancelFunc, catalog *store.CatalogStore, sm *services.ServiceManager) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig.String()))

		cancel()
		catalog.Close()

		if err := sm.CacheService.Close(); err != nil {
			logger.Warn("Error closing cache connection", gecho.Field("error", err))
		}
		if err := database.CloseInstance(); err != nil {
			logger.Warn("Error closing database connection", gecho.Field("error", err))
		}

		os.Exit(0)
	}()
}
