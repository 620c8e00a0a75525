package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"personality-quiz/internal/config"
	"personality-quiz/internal/domain"
	pgstore "personality-quiz/internal/infra/postgres"
	rediscache "personality-quiz/internal/infra/redis"
)

// NewPublishCmd stores a quiz document where the server reads from.
func NewPublishCmd(configPath *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "publish <file>",
		Short: "Store a quiz document in Postgres or SQLite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			def, base, err := readDefinition(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = base
			}
			if !domain.ValidIdentifier(name) {
				return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
			}
			if err := domain.CheckPlayable(def); err != nil {
				return err
			}
			if err := publish(cmd.Context(), cfg, name, def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "quiz name (default: file name without extension)")
	return cmd
}

// publish writes to Postgres when postgres.url is set, otherwise SQLite, and
// drops any cached copy from Redis.
func publish(ctx context.Context, cfg config.Config, name string, def domain.QuizDefinition) error {
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pgstore.NewQuizStore(pool).SaveQuiz(ctx, name, def); err != nil {
			return err
		}
		slog.Info("quiz saved", "quiz", name, "store", "postgres")
	case cfg.SQLite.Path != "":
		store, err := openSQLite(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveQuiz(ctx, name, def); err != nil {
			return err
		}
		slog.Info("quiz saved", "quiz", name, "store", "sqlite", "path", cfg.SQLite.Path)
	default:
		return fmt.Errorf("no quiz store configured: set postgres.url or sqlite.path")
	}

	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		cache := rediscache.NewQuizRepository(client, nil, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
		if err := cache.Invalidate(ctx, name); err != nil {
			slog.Warn("cache invalidation failed", "quiz", name, "err", err)
		}
	}
	return nil
}
