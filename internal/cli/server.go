package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-learning-lab/internal/app"
	"ai-learning-lab/internal/config"
	"ai-learning-lab/internal/content"
	"ai-learning-lab/internal/explain"
	"ai-learning-lab/internal/identity"
	"ai-learning-lab/internal/infra/memory"
	pgstore "ai-learning-lab/internal/infra/postgres"
	redisstore "ai-learning-lab/internal/infra/redis"
	sqlitestore "ai-learning-lab/internal/infra/sqlite"
	"ai-learning-lab/internal/leaderboard"
	transport "ai-learning-lab/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning lab server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	store, closeStore, err := openLeaderboardStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	var registry identity.Registry = memory.NewIdentityRegistry()
	if redisClient != nil {
		registry = redisstore.NewIdentityRegistry(redisClient)
	}
	if cfg.Auth.Secret == "" {
		log.Printf("auth secret not set; anonymous sign-in disabled, scores cannot be submitted")
	}
	auth := identity.NewAuthenticator(cfg.Auth.Secret, registry, config.TTLDuration(cfg.Auth.TTL, 24*time.Hour))

	cacheTTL := config.TTLDuration(cfg.Explain.CacheTTL, time.Hour)
	var cache explain.Cache = memory.NewExplanationCache(cacheTTL)
	if redisClient != nil {
		cache = redisstore.NewExplanationCache(redisClient, cacheTTL)
	}

	if cfg.Generation.APIKey == "" {
		log.Printf("generation api key not set; explanations and ideas will report a configuration error")
	}
	opts := []explain.Option{
		explain.WithHTTPClient(&http.Client{Timeout: config.TTLDuration(cfg.Generation.Timeout, 30*time.Second)}),
	}
	if cfg.Generation.BaseURL != "" {
		opts = append(opts, explain.WithBaseURL(cfg.Generation.BaseURL))
	}
	if cfg.Generation.Model != "" {
		opts = append(opts, explain.WithModel(cfg.Generation.Model))
	}
	generator := explain.NewClient(cfg.Generation.APIKey, opts...)

	appID := cfg.Leaderboard.AppID
	if appID == "" {
		appID = leaderboard.DefaultAppID
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	service := app.NewLabService(app.Options{
		Catalog:   catalog,
		Generator: generator,
		Cache:     cache,
		Store:     store,
		Auth:      auth,
		AppID:     appID,
		SkipDelay: config.TTLDuration(cfg.Game.SkipDelay, app.DefaultSkipDelay),
	})
	wsHandler := transport.NewWSHandler(service, config.TTLDuration(cfg.Generation.Timeout, transport.DefaultRequestTimeout))

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(service, wsHandler),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting learning lab on :%s (leaderboard %s)", finalPort, leaderboard.CollectionPath(appID))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// loadCatalog refuses to serve authored content that breaks the item invariants.
func loadCatalog() (app.Catalog, error) {
	if err := content.Validate(); err != nil {
		return app.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return app.DefaultCatalog(), nil
}

// openLeaderboardStore picks the most durable configured store: Postgres, then
// sqlite, then Redis, then process memory.
func openLeaderboardStore(ctx context.Context, cfg config.Config, redisClient *redis.Client) (leaderboard.Store, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("leaderboard store: postgres")
		return pgstore.NewLeaderboardStore(pool), pool.Close, nil
	case cfg.SQLite.Path != "":
		store, err := sqlitestore.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("leaderboard store: sqlite at %s", cfg.SQLite.Path)
		return store, func() { _ = store.Close() }, nil
	case redisClient != nil:
		log.Printf("leaderboard store: redis")
		return redisstore.NewLeaderboardStore(redisClient), func() {}, nil
	default:
		log.Printf("leaderboard store: memory (submissions are lost on restart)")
		return memory.NewLeaderboardStore(), func() {}, nil
	}
}
