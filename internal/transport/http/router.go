package http

import (
	"net/http"

	"personality-quiz/internal/app"
)

// NewMux wires every route the server exposes.
func NewMux(service *app.QuizService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /api/quizzes/{name}", NewDefinitionHandler(service))
	mux.HandleFunc("/ws", NewWSHandler(service).ServeWS)
	return mux
}
