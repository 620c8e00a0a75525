package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"
)

// WSHandler plays one quiz per connection. Each connection owns its own
// Player; nothing is shared between connections except the definition cache.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: slog.Default().With("component", "ws"),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Index *int `json:"index"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type readyPayload struct {
	PlayID      string `json:"play_id"`
	Quiz        string `json:"quiz"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Questions   int    `json:"questions"`
}

type questionPayload struct {
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	Progress float64         `json:"progress"`
	Question domain.Question `json:"question"`
}

type finishedPayload struct {
	Key    string        `json:"key"`
	Result domain.Result `json:"result"`
	Scores []app.Score   `json:"scores"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wsPresenter turns player callbacks into outbound messages.
type wsPresenter struct {
	send func(outboundMessage)
}

func (p wsPresenter) OnQuestionChanged(q domain.Question, progress app.Progress) {
	p.send(outboundMessage{Type: "question", Payload: questionPayload{
		Index:    progress.Index,
		Total:    progress.Total,
		Progress: progress.Fraction(),
		Question: q,
	}})
}

func (p wsPresenter) OnFinished(outcome app.Outcome) {
	p.send(outboundMessage{Type: "finished", Payload: finishedPayload{
		Key:    outcome.Key,
		Result: outcome.Result,
		Scores: outcome.Scores,
	}})
}

func (p wsPresenter) OnLoadError(err error) {
	p.send(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
}

// ServeWS upgrades the request, loads the quiz named by ?quiz= and then
// drives the player from client messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := h.service.Resolve(r.URL.Query().Get("quiz"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	playID := uuid.NewString()
	log := h.log.With("play_id", playID, "quiz", name)

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write failed", "err", err)
				return
			}
		}
	}()

	push := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}
	defer func() {
		close(send)
		<-writerDone
	}()

	player := h.service.NewPlayer(name, wsPresenter{send: push})
	def, err := player.Load(r.Context())
	if err != nil {
		// the presenter already reported it; a failed load ends the play
		log.Info("quiz load failed", "err", err)
		return
	}
	log.Info("play opened")
	push(outboundMessage{Type: "ready", Payload: readyPayload{
		PlayID:      playID,
		Quiz:        name,
		Title:       def.Title,
		Description: def.Description,
		Image:       def.Image,
		Questions:   len(def.Questions),
	}})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var err error
		switch inbound.Type {
		case "start":
			err = player.Start()
		case "answer":
			var payload answerPayload
			if jsonErr := json.Unmarshal(inbound.Payload, &payload); jsonErr != nil || payload.Index == nil {
				push(outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			err = player.Answer(*payload.Index)
		case "restart":
			err = player.Restart()
		default:
			push(outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
			continue
		}
		if err != nil {
			push(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
			continue
		}
		if player.State() == app.Finished {
			log.Debug("play finished", "scores", player.Scores())
		}
	}
	log.Info("play closed", "state", player.State().String())
}
