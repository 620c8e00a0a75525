package authoring

import (
	"fmt"
	"strings"

	"personality-quiz/internal/domain"
)

// Validate lists every problem that keeps the draft from being saved, in
// form order. An empty list means Build will succeed.
func Validate(d Draft) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(d.Title) == "" {
		add("Quiz title is required")
	}

	filename := strings.TrimSpace(d.Filename)
	switch {
	case filename == "":
		add("Filename is required")
	case !domain.ValidIdentifier(filename):
		add("Filename can only contain letters, numbers, dashes and underscores")
	}

	declared := map[string]bool{}
	for i, row := range d.Results {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			// Blank key rows are not results yet; the form ignores them.
			continue
		}
		if !domain.ValidIdentifier(key) {
			add("Result %d key %q can only contain letters, numbers, dashes and underscores", i+1, key)
		}
		if declared[key] {
			add("Result key %q is used more than once", key)
		}
		declared[key] = true
		if strings.TrimSpace(row.Title) == "" {
			add("Result %q title is required", key)
		}
	}
	if len(declared) < 2 {
		add("At least 2 results are required")
	}

	if len(d.Questions) < 1 {
		add("At least 1 question is required")
	}
	for qi, q := range d.Questions {
		if strings.TrimSpace(q.Text) == "" {
			add("Question %d text is required", qi+1)
		}
		if len(q.Answers) < 2 {
			add("Question %d needs at least 2 answers", qi+1)
		}
		for ai, a := range q.Answers {
			if strings.TrimSpace(a.Text) == "" {
				add("Question %d, Answer %d text is required", qi+1, ai+1)
			}
			seen := map[string]bool{}
			for _, key := range domain.SortedPointKeys(a.Points) {
				value := a.Points[key]
				trimmed := strings.TrimSpace(key)
				if seen[trimmed] {
					add("Question %d, Answer %d lists result %q more than once", qi+1, ai+1, trimmed)
				}
				seen[trimmed] = true
				if value < 0 || value > MaxPoints {
					add("Question %d, Answer %d gives %d points to %q; points must be between 0 and %d", qi+1, ai+1, value, key, MaxPoints)
				}
				if value != 0 && !declared[trimmed] {
					add("Question %d, Answer %d gives points to unknown result %q", qi+1, ai+1, key)
				}
			}
		}
	}
	return problems
}
