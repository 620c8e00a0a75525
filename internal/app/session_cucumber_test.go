//go:build cucumber

package app_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"
)

// TestSessionScenarios runs the session feature scenarios.
func TestSessionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "features", "session.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires the session steps.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a quiz declaring results "([^"]*)"$`, state.givenResults)
	ctx.Step(`^a question with answers "([^"]*)" and "([^"]*)"$`, state.givenQuestion)
	ctx.Step(`^I start the quiz$`, state.whenIStart)
	ctx.Step(`^I pick answer (\d+)$`, state.whenIPick)
	ctx.Step(`^the quiz is at question (\d+) of (\d+)$`, state.thenAtQuestion)
	ctx.Step(`^the quiz is finished$`, state.thenFinished)
	ctx.Step(`^the winner is "([^"]*)"$`, state.thenWinner)
	ctx.Step(`^the score of "([^"]*)" is (\d+)$`, state.thenScore)
	ctx.Step(`^starting fails with "([^"]*)"$`, state.thenStartFails)
}

type sessionScenarioState struct {
	def      domain.QuizDefinition
	session  *app.Session
	step     app.Step
	startErr error
}

func (s *sessionScenarioState) reset() {
	s.def = domain.QuizDefinition{Title: "scenario"}
	s.session = app.NewSession()
	s.step = app.Step{}
	s.startErr = nil
}

func (s *sessionScenarioState) givenResults(keys string) error {
	for _, key := range strings.Split(keys, ",") {
		s.def.Results.Set(strings.TrimSpace(key), domain.Result{Title: key})
	}
	return nil
}

func (s *sessionScenarioState) givenQuestion(first, second string) error {
	q := domain.Question{Text: fmt.Sprintf("question %d", len(s.def.Questions)+1)}
	for _, raw := range []string{first, second} {
		points, err := parsePoints(raw)
		if err != nil {
			return err
		}
		q.Answers = append(q.Answers, domain.Answer{Text: raw, Points: points})
	}
	s.def.Questions = append(s.def.Questions, q)
	return nil
}

func (s *sessionScenarioState) whenIStart() error {
	s.step, s.startErr = s.session.Start(s.def)
	return nil
}

func (s *sessionScenarioState) whenIPick(n int) error {
	step, err := s.session.SelectAnswerAt(n - 1)
	if err != nil {
		return err
	}
	s.step = step
	return nil
}

func (s *sessionScenarioState) thenAtQuestion(n, total int) error {
	if s.step.State != app.InQuestion {
		return fmt.Errorf("expected in_question, got %s", s.step.State)
	}
	if got := (app.Progress{Index: n - 1, Total: total}); s.step.Progress != got {
		return fmt.Errorf("expected progress %+v, got %+v", got, s.step.Progress)
	}
	return nil
}

func (s *sessionScenarioState) thenFinished() error {
	if s.session.State() != app.Finished {
		return fmt.Errorf("expected finished, got %s", s.session.State())
	}
	return nil
}

func (s *sessionScenarioState) thenWinner(key string) error {
	outcome, ok := s.session.Outcome()
	if !ok {
		return fmt.Errorf("session has no outcome")
	}
	if outcome.Key != key {
		return fmt.Errorf("expected winner %q, got %q", key, outcome.Key)
	}
	return nil
}

func (s *sessionScenarioState) thenScore(key string, points int) error {
	for _, score := range s.session.Scores() {
		if score.Key == key {
			if score.Points != points {
				return fmt.Errorf("expected %s=%d, got %d", key, points, score.Points)
			}
			return nil
		}
	}
	return fmt.Errorf("no bucket for %q", key)
}

func (s *sessionScenarioState) thenStartFails(message string) error {
	if s.startErr == nil {
		return fmt.Errorf("expected start to fail")
	}
	if s.startErr.Error() != message {
		return fmt.Errorf("expected %q, got %q", message, s.startErr.Error())
	}
	return nil
}

// parsePoints reads "cat:2,dog:1"; an empty string awards nothing.
func parsePoints(raw string) (map[string]int, error) {
	points := map[string]int{}
	if strings.TrimSpace(raw) == "" {
		return points, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		key, raw, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("bad points %q", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("bad points %q: %w", pair, err)
		}
		points[strings.TrimSpace(key)] = n
	}
	return points, nil
}
