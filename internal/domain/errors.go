package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuizNotFound indicates no quiz document exists under the requested name.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidName is returned for quiz names outside [a-zA-Z0-9_-]+.
	ErrInvalidName = errors.New("invalid quiz name")
	// ErrLoad matches every *LoadError via errors.Is.
	ErrLoad = errors.New("quiz could not be loaded")
	// ErrEmptyQuiz indicates a definition without questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrNoCandidateResult indicates there is no result a session could end on.
	ErrNoCandidateResult = errors.New("quiz declares no results")
	// ErrQuestionWithoutAnswers indicates a question the player could never leave.
	ErrQuestionWithoutAnswers = errors.New("question has no answers")
	// ErrDanglingResultKey matches every *DanglingKeyError via errors.Is.
	ErrDanglingResultKey = errors.New("answer references an undeclared result")
	// ErrInvalidResultKey matches every *InvalidResultKeyError via errors.Is.
	ErrInvalidResultKey = errors.New("invalid result key")
	// ErrInvalidQuiz matches every *ValidationError via errors.Is.
	ErrInvalidQuiz = errors.New("invalid quiz")

	// ErrNotStarted is returned when restarting a session that never started.
	ErrNotStarted = errors.New("session has not been started")
	// ErrNotInQuestion is returned when an answer arrives outside a question.
	ErrNotInQuestion = errors.New("session is not waiting for an answer")
	// ErrAnswerOutOfRange is returned for an answer index the question does not have.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	// ErrNotLoaded is returned when a player is started before its definition arrived.
	ErrNotLoaded = errors.New("quiz definition not loaded yet")
)

// LoadError reports a definition that could not be fetched, parsed or
// accepted for play. It is terminal for the player that hit it.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("load quiz: %v", e.Err)
	}
	return fmt.Sprintf("load quiz %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// DanglingKeyError points at the first answer awarding points to a result
// that is not declared. Question and Answer are zero-based.
type DanglingKeyError struct {
	Question int
	Answer   int
	Key      string
}

func (e *DanglingKeyError) Error() string {
	return fmt.Sprintf("question %d, answer %d awards points to undeclared result %q", e.Question+1, e.Answer+1, e.Key)
}

func (e *DanglingKeyError) Is(target error) bool { return target == ErrDanglingResultKey }

// InvalidResultKeyError reports a declared result whose key is outside
// [a-zA-Z0-9_-]+.
type InvalidResultKeyError struct {
	Key string
}

func (e *InvalidResultKeyError) Error() string {
	return fmt.Sprintf("result key %q may only contain letters, numbers, dashes and underscores", e.Key)
}

func (e *InvalidResultKeyError) Is(target error) bool { return target == ErrInvalidResultKey }

// ValidationError lists every problem found in an authoring draft.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid quiz: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidQuiz }
