package main

import (
	"context"
	"log"
	"time"

	"watchhub/cmd"
	"watchhub/internal/data/repository"
	"watchhub/internal/wire"
	"watchhub/pkg/cache"
	"watchhub/pkg/database"
	"watchhub/pkg/tmdb"
	"watchhub/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	filmCache := cache.New(newCacheStore(config.Redis, logger), config.Cache.Prefix, config.Cache.DefaultTTL, logger)
	defer filmCache.Close()

	provider := tmdb.NewClient(tmdb.Config{
		BaseURL:           config.TMDB.BaseURL,
		ImageBaseURL:      config.TMDB.ImageBaseURL,
		APIKey:            config.TMDB.APIKey,
		BearerToken:       config.TMDB.BearerToken,
		Language:          config.TMDB.Language,
		Timeout:           config.TMDB.Timeout,
		DetailConcurrency: config.TMDB.DetailConcurrency,
	}, logger)
	if config.TMDB.APIKey == "" && config.TMDB.BearerToken == "" {
		logger.Warn("TMDB credentials are not configured, provider calls will fail")
	}

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, filmCache, provider, config, logger)

	if err := cmd.APIServer(app.Router, config.App, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// newCacheStore connects to Redis when configured and falls back to the
// in-process store otherwise.
func newCacheStore(cfg utils.RedisConfig, logger *zap.Logger) cache.Store {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := cache.NewRedisStore(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err), zap.String("addr", cfg.Addr))
		return cache.NewMemoryStore()
	}

	logger.Info("Redis cache connected", zap.String("addr", cfg.Addr))
	return store
}
