package cli

import (
	"context"
	"path/filepath"
	"testing"

	"ai-learning-lab/internal/config"
	"ai-learning-lab/internal/infra/memory"
	redisstore "ai-learning-lab/internal/infra/redis"
	sqlitestore "ai-learning-lab/internal/infra/sqlite"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestOpenLeaderboardStorePriority(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var cfg config.Config
	store, closeStore, err := openLeaderboardStore(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	closeStore()
	if _, ok := store.(*memory.LeaderboardStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	store, closeStore, err = openLeaderboardStore(ctx, cfg, client)
	if err != nil {
		t.Fatalf("redis store: %v", err)
	}
	closeStore()
	if _, ok := store.(*redisstore.LeaderboardStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}

	cfg.SQLite.Path = filepath.Join(t.TempDir(), "lab.db")
	store, closeStore, err = openLeaderboardStore(ctx, cfg, client)
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	defer closeStore()
	if _, ok := store.(*sqlitestore.LeaderboardStore); !ok {
		t.Fatalf("expected sqlite store to win over redis, got %T", store)
	}
}

func TestMigrateRequiresPostgresURL(t *testing.T) {
	if err := runMigrationsWithConfig(context.Background(), config.Config{}); err == nil {
		t.Fatalf("expected error without postgres url")
	}
}

func TestLoadCatalogValidatesContent(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("shipped catalog should validate: %v", err)
	}
	if len(catalog.Questions()) == 0 || len(catalog.Words()) == 0 || len(catalog.Riddles()) == 0 {
		t.Fatalf("expected populated catalog")
	}
}
