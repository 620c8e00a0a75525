package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"personality-quiz/internal/domain"
)

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	assert.Empty(t, Validate(petsDraft()))
}

func TestValidateFilename(t *testing.T) {
	d := petsDraft()
	d.Filename = "my quiz.json"
	assert.Equal(t, []string{"Filename can only contain letters, numbers, dashes and underscores"}, Validate(d))
}

func TestValidateResults(t *testing.T) {
	d := petsDraft()
	d.Results = append(d.Results,
		ResultRow{Key: "dog", Title: "Another dog"},
		ResultRow{Key: "bad key", Title: "x"},
		ResultRow{Key: "bird"},
		ResultRow{Key: "   "},
	)
	assert.Equal(t, []string{
		`Result key "dog" is used more than once`,
		`Result 4 key "bad key" can only contain letters, numbers, dashes and underscores`,
		`Result "bird" title is required`,
	}, Validate(d))
}

func TestValidateBlankKeysDoNotCount(t *testing.T) {
	d := petsDraft()
	d.Results = []ResultRow{{Key: "dog", Title: "Dog"}, {Key: "", Title: "Nameless"}}
	d.Questions[0].Answers[0].Points = map[string]int{"dog": 1}
	d.Questions[1].Answers[0].Points = nil
	assert.Equal(t, []string{"At least 2 results are required"}, Validate(d))
}

func TestValidateQuestions(t *testing.T) {
	d := petsDraft()
	d.Questions = append(d.Questions, QuestionRow{Text: "Lonely", Answers: []AnswerRow{{Text: "Only"}}})
	assert.Equal(t, []string{"Question 3 needs at least 2 answers"}, Validate(d))

	d.Questions = nil
	assert.Equal(t, []string{"At least 1 question is required"}, Validate(d))
}

func TestValidatePoints(t *testing.T) {
	d := petsDraft()
	d.Questions[0].Answers[1].Points = map[string]int{"dog": 11, "cat": -1, "ghost": 2, "owl": 0}
	assert.Equal(t, []string{
		`Question 1, Answer 2 gives -1 points to "cat"; points must be between 0 and 10`,
		`Question 1, Answer 2 gives 11 points to "dog"; points must be between 0 and 10`,
		`Question 1, Answer 2 gives points to unknown result "ghost"`,
	}, Validate(d))
}

func TestValidateWhitespaceTwinPoints(t *testing.T) {
	d := petsDraft()
	d.Questions[0].Answers[0].Points = map[string]int{"cat": 1, " cat": 9}
	assert.Equal(t, []string{`Question 1, Answer 1 lists result "cat" more than once`}, Validate(d))

	for i := 0; i < 5; i++ {
		_, err := Build(d)
		assert.ErrorIs(t, err, domain.ErrInvalidQuiz)
	}

	// a zero twin is still a second cell for the same result
	d.Questions[0].Answers[0].Points = map[string]int{"cat": 1, "cat ": 0}
	assert.Len(t, Validate(d), 1)
}
