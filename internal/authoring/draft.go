// Package authoring turns the state of the quiz editor form into quiz
// definitions and back. Everything here is a pure data transform; the form
// itself lives in whatever front end edits a Draft.
package authoring

import (
	"strings"

	"personality-quiz/internal/domain"
)

// MaxPoints is the largest weight the editor lets an answer award.
const MaxPoints = 10

// Draft mirrors the editor form. Rows keep form order; result order
// becomes declaration order and therefore the tie-break order.
type Draft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Filename    string        `json:"filename"`
	Results     []ResultRow   `json:"results"`
	Questions   []QuestionRow `json:"questions"`
}

type ResultRow struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type QuestionRow struct {
	Text    string      `json:"text"`
	Image   string      `json:"image"`
	Answers []AnswerRow `json:"answers"`
}

// AnswerRow holds the points grid of one answer. Zero cells may be present
// or absent; both mean no points.
type AnswerRow struct {
	Text   string         `json:"text"`
	Points map[string]int `json:"points"`
}

// NewDraft returns the form as it looks when the editor opens: one result
// and one question with two blank answers.
func NewDraft() Draft {
	return Draft{
		Results: []ResultRow{
			{Key: "result1", Title: "Result 1", Description: "First possible result"},
		},
		Questions: []QuestionRow{
			{Answers: []AnswerRow{{Points: map[string]int{}}, {Points: map[string]int{}}}},
		},
	}
}

// Build converts a draft into a definition. Strings are trimmed, empty
// images and zero points are dropped. A draft with problems yields a
// *domain.ValidationError listing all of them.
func Build(d Draft) (domain.QuizDefinition, error) {
	if problems := Validate(d); len(problems) > 0 {
		return domain.QuizDefinition{}, &domain.ValidationError{Problems: problems}
	}

	def := domain.QuizDefinition{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Image:       strings.TrimSpace(d.Image),
		Questions:   make([]domain.Question, 0, len(d.Questions)),
	}
	for _, row := range d.Results {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		def.Results.Set(key, domain.Result{
			Title:       strings.TrimSpace(row.Title),
			Description: strings.TrimSpace(row.Description),
			Image:       strings.TrimSpace(row.Image),
		})
	}
	for _, qrow := range d.Questions {
		q := domain.Question{
			Text:    strings.TrimSpace(qrow.Text),
			Image:   strings.TrimSpace(qrow.Image),
			Answers: make([]domain.Answer, 0, len(qrow.Answers)),
		}
		for _, arow := range qrow.Answers {
			points := make(map[string]int)
			for _, key := range domain.SortedPointKeys(arow.Points) {
				if value := arow.Points[key]; value > 0 {
					points[strings.TrimSpace(key)] = value
				}
			}
			q.Answers = append(q.Answers, domain.Answer{Text: strings.TrimSpace(arow.Text), Points: points})
		}
		def.Questions = append(def.Questions, q)
	}
	return def, nil
}

// FromDefinition fills the form from an existing document so it can be
// edited and saved again.
func FromDefinition(def domain.QuizDefinition, filename string) Draft {
	d := Draft{
		Title:       def.Title,
		Description: def.Description,
		Image:       def.Image,
		Filename:    filename,
	}
	for _, key := range def.Results.Keys() {
		res, _ := def.Results.Get(key)
		d.Results = append(d.Results, ResultRow{
			Key:         key,
			Title:       res.Title,
			Description: res.Description,
			Image:       res.Image,
		})
	}
	for _, q := range def.Questions {
		row := QuestionRow{Text: q.Text, Image: q.Image}
		for _, a := range q.Answers {
			points := make(map[string]int, len(a.Points))
			for key, value := range a.Points {
				points[key] = value
			}
			row.Answers = append(row.Answers, AnswerRow{Text: a.Text, Points: points})
		}
		d.Questions = append(d.Questions, row)
	}
	return d
}

// Encode renders the downloadable document for a built definition.
func Encode(def domain.QuizDefinition) ([]byte, error) {
	return domain.EncodeJSON(def)
}
