// Package tui plays a quiz in the terminal with Bubble Tea.
package tui

import (
	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"
)

// Screen is the presenter behind the terminal view. It records the last
// render instruction; Model reads it when drawing.
type Screen struct {
	question domain.Question
	progress app.Progress
	outcome  *app.Outcome
	loadErr  error
}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) OnQuestionChanged(q domain.Question, progress app.Progress) {
	s.question = q
	s.progress = progress
	s.outcome = nil
}

func (s *Screen) OnFinished(outcome app.Outcome) {
	s.outcome = &outcome
}

func (s *Screen) OnLoadError(err error) {
	s.loadErr = err
}

// LoadError is the error reported through OnLoadError, if any.
func (s *Screen) LoadError() error {
	return s.loadErr
}
