package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"personality-quiz/internal/domain"
)

// QuizStore keeps quiz documents in the quizzes table, one row per name.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) LoadQuiz(ctx context.Context, name string) (domain.QuizDefinition, error) {
	var raw string
	err := s.pool.QueryRow(ctx, `SELECT data::text FROM quizzes WHERE name=$1`, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizDefinition{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizDefinition{}, fmt.Errorf("load quiz: %w", err)
	}
	return domain.ParseDefinition([]byte(raw), domain.FormatJSON)
}

// SaveQuiz inserts or replaces the document stored under name.
func (s *QuizStore) SaveQuiz(ctx context.Context, name string, def domain.QuizDefinition) error {
	if !domain.ValidIdentifier(name) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	data, err := domain.EncodeJSON(def)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO quizzes (name, data, updated_at) VALUES ($1, $2::json, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

// Names lists stored quiz names in order.
func (s *QuizStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM quizzes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
