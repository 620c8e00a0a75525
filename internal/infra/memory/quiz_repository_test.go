package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"personality-quiz/internal/domain"
)

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.QuizDefinition{
			"pets": sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "pets"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	quiz, err := repo.GetQuiz(context.Background(), "pets")
	if err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if keys := quiz.Results.Keys(); len(keys) != 2 || keys[0] != "cat" {
		t.Fatalf("expected declaration order preserved, got %v", keys)
	}
}

func TestQuizRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.QuizDefinition{"pets": sampleQuiz()}),
	}
	repo := NewQuizRepository(loader, time.Minute)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuiz(context.Background(), "pets")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), "pets")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryDoesNotCacheFailures(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(nil)}
	repo := NewQuizRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := repo.GetQuiz(context.Background(), "missing")
		if !errors.Is(err, domain.ErrQuizNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected failures to hit the loader each time, got %d", loader.calls)
	}
}

type countingLoader struct {
	QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, name string) (domain.QuizDefinition, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, name)
}

func sampleQuiz() domain.QuizDefinition {
	return domain.QuizDefinition{
		Title: "Pets",
		Questions: []domain.Question{
			{
				Text: "Weekend plans?",
				Answers: []domain.Answer{
					{Text: "Nap", Points: map[string]int{"cat": 2}},
					{Text: "Hike", Points: map[string]int{"dog": 2}},
				},
			},
		},
		Results: domain.NewResults(
			domain.ResultEntry{Key: "cat", Result: domain.Result{Title: "Cat"}},
			domain.ResultEntry{Key: "dog", Result: domain.Result{Title: "Dog"}},
		),
	}
}
