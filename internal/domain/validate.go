package domain

import (
	"fmt"
	"regexp"
	"sort"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidIdentifier reports whether s can be used as a result key or a quiz
// name. Names double as file names, so nothing else is allowed.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// CheckPlayable decides whether a definition can be handed to a session.
// Unlike authoring validation it ignores cosmetic gaps such as a missing
// title and only rejects documents that would break play or scoring.
func CheckPlayable(def QuizDefinition) error {
	if len(def.Questions) == 0 {
		return ErrEmptyQuiz
	}
	if def.Results.Len() == 0 {
		return ErrNoCandidateResult
	}
	for _, key := range def.Results.Keys() {
		if !ValidIdentifier(key) {
			return &InvalidResultKeyError{Key: key}
		}
	}
	for qi, q := range def.Questions {
		if len(q.Answers) == 0 {
			return fmt.Errorf("question %d: %w", qi+1, ErrQuestionWithoutAnswers)
		}
		for ai, a := range q.Answers {
			for _, key := range SortedPointKeys(a.Points) {
				if !def.Results.Has(key) {
					return &DanglingKeyError{Question: qi, Answer: ai, Key: key}
				}
			}
		}
	}
	return nil
}

// SortedPointKeys returns the keys of a points map in lexical order.
func SortedPointKeys(points map[string]int) []string {
	keys := make([]string, 0, len(points))
	for key := range points {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
