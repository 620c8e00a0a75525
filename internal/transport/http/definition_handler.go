package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"
)

// DefinitionHandler serves quiz documents for clients that run the session
// themselves.
type DefinitionHandler struct {
	service *app.QuizService
	log     *slog.Logger
}

func NewDefinitionHandler(service *app.QuizService) *DefinitionHandler {
	return &DefinitionHandler{
		service: service,
		log:     slog.Default().With("component", "definitions"),
	}
}

// ServeHTTP expects the quiz name in the {name} path wildcard.
func (h *DefinitionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, err := h.service.Definition(r.Context(), name)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("definition load failed", "quiz", name, "err", err)
		}
		writeJSON(w, status, errorPayload{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyQuiz),
		errors.Is(err, domain.ErrNoCandidateResult),
		errors.Is(err, domain.ErrInvalidResultKey),
		errors.Is(err, domain.ErrQuestionWithoutAnswers),
		errors.Is(err, domain.ErrDanglingResultKey):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
