package app

import (
	"context"
	"fmt"

	"personality-quiz/internal/domain"
)

// QuizRepository loads quiz definitions by name (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, name string) (domain.QuizDefinition, error)
}

// QuizService resolves the load parameter to a definition and hands out
// players bound to it.
type QuizService struct {
	quizzes     QuizRepository
	defaultName string
}

func NewQuizService(quizzes QuizRepository, defaultName string) *QuizService {
	return &QuizService{quizzes: quizzes, defaultName: defaultName}
}

// Resolve applies the default name when none was requested.
func (s *QuizService) Resolve(name string) string {
	if name == "" {
		return s.defaultName
	}
	return name
}

// Definition loads a playable definition. Every failure is a *domain.LoadError.
func (s *QuizService) Definition(ctx context.Context, name string) (domain.QuizDefinition, error) {
	name = s.Resolve(name)
	if !domain.ValidIdentifier(name) {
		return domain.QuizDefinition{}, &domain.LoadError{Name: name, Err: domain.ErrInvalidName}
	}

	def, err := s.quizzes.GetQuiz(ctx, name)
	if err != nil {
		return domain.QuizDefinition{}, &domain.LoadError{Name: name, Err: err}
	}
	if err := domain.CheckPlayable(def); err != nil {
		return domain.QuizDefinition{}, &domain.LoadError{Name: name, Err: fmt.Errorf("not playable: %w", err)}
	}
	return def, nil
}

// Loader binds a name to this service.
func (s *QuizService) Loader(name string) Loader {
	return LoaderFunc(func(ctx context.Context) (domain.QuizDefinition, error) {
		return s.Definition(ctx, name)
	})
}

// NewPlayer returns a player for the named quiz; it still has to be loaded.
func (s *QuizService) NewPlayer(name string, presenter Presenter) *Player {
	return NewPlayer(s.Loader(name), presenter)
}
