package authoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personality-quiz/internal/domain"
)

func petsDraft() Draft {
	return Draft{
		Title:       "  Which Pet?  ",
		Description: "Find out",
		Filename:    "which-pet",
		Results: []ResultRow{
			{Key: "dog", Title: "Dog", Description: "Loyal"},
			{Key: "cat", Title: "Cat", Description: "Aloof", Image: " https://example.com/cat.jpg "},
		},
		Questions: []QuestionRow{
			{
				Text: "Weekend?",
				Answers: []AnswerRow{
					{Text: "Nap", Points: map[string]int{"cat": 2, "dog": 0}},
					{Text: "Hike", Points: map[string]int{"dog": 3}},
				},
			},
			{
				Text:  "Snack?",
				Image: "https://example.com/snack.jpg",
				Answers: []AnswerRow{
					{Text: "Fish", Points: map[string]int{"cat": 1}},
					{Text: "Anything", Points: map[string]int{"dog": 0, "cat": 0}},
				},
			},
		},
	}
}

func TestBuildProducesDefinition(t *testing.T) {
	def, err := Build(petsDraft())
	require.NoError(t, err)

	assert.Equal(t, "Which Pet?", def.Title)
	assert.Empty(t, def.Image)
	assert.Equal(t, []string{"dog", "cat"}, def.Results.Keys())
	cat, _ := def.Results.Get("cat")
	assert.Equal(t, "https://example.com/cat.jpg", cat.Image)

	require.Len(t, def.Questions, 2)
	assert.Equal(t, map[string]int{"cat": 2}, def.Questions[0].Answers[0].Points)
	assert.Equal(t, map[string]int{}, def.Questions[1].Answers[1].Points)
	assert.Equal(t, "https://example.com/snack.jpg", def.Questions[1].Image)

	assert.NoError(t, domain.CheckPlayable(def))
}

func TestEncodeOmitsZeroPointsAndEmptyImages(t *testing.T) {
	def, err := Build(petsDraft())
	require.NoError(t, err)

	data, err := Encode(def)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	_, hasImage := doc["image"]
	assert.False(t, hasImage)

	questions := doc["questions"].([]any)
	first := questions[0].(map[string]any)["answers"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"cat": float64(2)}, first["points"])
	_, hasQuestionImage := questions[0].(map[string]any)["image"]
	assert.False(t, hasQuestionImage)
}

func TestRoundTripThroughDocument(t *testing.T) {
	def, err := Build(petsDraft())
	require.NoError(t, err)

	data, err := Encode(def)
	require.NoError(t, err)
	loaded, err := domain.ParseDefinition(data, domain.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, def.Title, loaded.Title)
	assert.Equal(t, def.Questions, loaded.Questions)
	assert.Equal(t, def.Results, loaded.Results)

	// load -> edit form -> save reproduces the same document
	again, err := Build(FromDefinition(loaded, "which-pet"))
	require.NoError(t, err)
	assert.Equal(t, def, again)
}

func TestBuildReportsAllProblems(t *testing.T) {
	d := NewDraft()
	_, err := Build(d)
	require.ErrorIs(t, err, domain.ErrInvalidQuiz)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"Quiz title is required",
		"Filename is required",
		"At least 2 results are required",
		"Question 1 text is required",
		"Question 1, Answer 1 text is required",
		"Question 1, Answer 2 text is required",
	}, verr.Problems)
}

func TestFromDefinitionKeepsOrder(t *testing.T) {
	def, err := Build(petsDraft())
	require.NoError(t, err)

	d := FromDefinition(def, "which-pet")
	assert.Equal(t, "which-pet", d.Filename)
	require.Len(t, d.Results, 2)
	assert.Equal(t, "dog", d.Results[0].Key)
	assert.Equal(t, "cat", d.Results[1].Key)
	assert.Equal(t, "Snack?", d.Questions[1].Text)

	d.Questions[0].Answers[0].Points["cat"] = 9
	assert.Equal(t, 2, def.Questions[0].Answers[0].Points["cat"], "draft must not alias the definition")
}
