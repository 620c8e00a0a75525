package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"personality-quiz/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
    name       TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

// QuizStore keeps quiz documents in a local SQLite file, for authors who
// publish without a Postgres server.
type QuizStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*QuizStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	store, err := NewQuizStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewQuizStore applies pragmas and the schema to an open database.
func NewQuizStore(db *sql.DB) (*QuizStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	stmts := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		schema,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("prepare sqlite store: %w", err)
		}
	}
	return &QuizStore{db: db, now: time.Now}, nil
}

func (s *QuizStore) LoadQuiz(ctx context.Context, name string) (domain.QuizDefinition, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM quizzes WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quizzes (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, string(data), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

// Names lists stored quizzes in name order.
func (s *QuizStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM quizzes ORDER BY name`)
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

func (s *QuizStore) Close() error {
	return s.db.Close()
}
