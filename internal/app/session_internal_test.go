package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personality-quiz/internal/domain"
)

func TestSelectAnswerFailureLeavesSessionUntouched(t *testing.T) {
	q := domain.Question{Text: "Only", Answers: []domain.Answer{
		{Text: "A", Points: map[string]int{"cat": 2}},
	}}
	// A session that somehow lost its results before the last answer.
	s := &Session{
		def:    domain.QuizDefinition{Questions: []domain.Question{q}},
		state:  InQuestion,
		scores: map[string]int{},
	}

	_, err := s.SelectAnswerAt(0)
	require.ErrorIs(t, err, domain.ErrNoCandidateResult)

	assert.Equal(t, InQuestion, s.State())
	assert.Equal(t, 0, s.index)
	assert.Empty(t, s.Scores())
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Only", current.Text)
	assert.Equal(t, 0.0, s.ProgressFraction())
}
