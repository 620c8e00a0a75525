package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"personality-quiz/internal/app"
	"personality-quiz/internal/config"
	"personality-quiz/internal/infra/file"
	"personality-quiz/internal/infra/httpfetch"
	"personality-quiz/internal/infra/memory"
	pgstore "personality-quiz/internal/infra/postgres"
	rediscache "personality-quiz/internal/infra/redis"
	"personality-quiz/internal/infra/sqlite"
)

// closers collects cleanup funcs in acquisition order.
type closers []func()

func (c closers) Close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// newQuizLoader opens the backing store named by quiz.source.
func newQuizLoader(ctx context.Context, cfg config.Config, cleanup *closers) (memory.QuizLoader, error) {
	switch cfg.Quiz.Source {
	case config.SourceBuiltin:
		return file.Builtin(), nil
	case config.SourceFile:
		if cfg.Quiz.Dir == "" {
			return nil, fmt.Errorf("quiz.dir not configured")
		}
		return file.NewDirLoader(cfg.Quiz.Dir), nil
	case config.SourceHTTP:
		if cfg.Quiz.BaseURL == "" {
			return nil, fmt.Errorf("quiz.base_url not configured")
		}
		return httpfetch.NewLoader(cfg.Quiz.BaseURL, &http.Client{Timeout: 10 * time.Second}), nil
	case config.SourcePostgres:
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		*cleanup = append(*cleanup, pool.Close)
		return pgstore.NewQuizStore(pool), nil
	case config.SourceSQLite:
		store, err := openSQLite(cfg)
		if err != nil {
			return nil, err
		}
		*cleanup = append(*cleanup, func() { _ = store.Close() })
		return store, nil
	}
	return nil, fmt.Errorf("unknown quiz.source %q", cfg.Quiz.Source)
}

// newQuizRepository puts a cache in front of the configured loader: Redis
// when redis.addr is set, otherwise in-process.
func newQuizRepository(ctx context.Context, cfg config.Config, cleanup *closers) (app.QuizRepository, error) {
	loader, err := newQuizLoader(ctx, cfg, cleanup)
	if err != nil {
		return nil, err
	}
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if client := newRedisClient(cfg); client != nil {
		*cleanup = append(*cleanup, func() { _ = client.Close() })
		slog.Info("using redis definition cache", "addr", cfg.Redis.Addr)
		return rediscache.NewQuizRepository(client, loader, config.TTLDuration(cfg.Redis.TTL, quizTTL)), nil
	}
	return memory.NewQuizRepository(loader, quizTTL), nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func connectPostgres(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.Postgres.URL == "" {
		return nil, fmt.Errorf("postgres url not configured")
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

func openSQLite(cfg config.Config) (*sqlite.QuizStore, error) {
	if cfg.SQLite.Path == "" {
		return nil, fmt.Errorf("sqlite.path not configured")
	}
	return sqlite.Open(cfg.SQLite.Path)
}
