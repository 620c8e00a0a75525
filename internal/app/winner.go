package app

import "personality-quiz/internal/domain"

// ResolveWinner scans the declared results in declaration order and keeps
// the first key holding the highest score: a later key replaces the
// running best only when strictly greater. Buckets for undeclared keys are
// ignored.
func ResolveWinner(results domain.Results, scores map[string]int) (string, error) {
	var (
		best      string
		bestScore int
		found     bool
	)
	for _, key := range results.Keys() {
		score := scores[key]
		if !found || score > bestScore {
			best, bestScore, found = key, score, true
		}
	}
	if !found {
		return "", domain.ErrNoCandidateResult
	}
	return best, nil
}
