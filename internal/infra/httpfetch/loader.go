package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"personality-quiz/internal/domain"
)

// maxDocumentSize caps how much of a response body is read.
const maxDocumentSize = 1 << 20

// Loader fetches <baseURL>/<name>.json, the way a static site serves quiz
// documents next to the player.
type Loader struct {
	baseURL string
	client  *http.Client
}

// NewLoader uses http.DefaultClient when client is nil.
func NewLoader(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (l *Loader) LoadQuiz(ctx context.Context, name string) (domain.QuizDefinition, error) {
	if !domain.ValidIdentifier(name) {
		return domain.QuizDefinition{}, fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	target := l.baseURL + "/" + url.PathEscape(name) + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.QuizDefinition{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.QuizDefinition{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.QuizDefinition{}, domain.ErrQuizNotFound
	case resp.StatusCode != http.StatusOK:
		return domain.QuizDefinition{}, fmt.Errorf("fetch %s: unexpected status %d", target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return domain.QuizDefinition{}, fmt.Errorf("read %s: %w", target, err)
	}
	return domain.ParseDefinition(data, domain.FormatJSON)
}
