package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz session per websocket connection. The client is
// a pure presentation layer: it renders the payloads and forwards user
// actions back as typed messages.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Kinds    []domain.Kind `json:"kinds"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type leaderboardPayload struct {
	Limit int `json:"limit"`
}

// questionView is the client-facing projection of the current question; the
// expected answer and explanation are withheld until the answer is in.
type questionView struct {
	Index      int               `json:"index"` // 0-based
	Total      int               `json:"total"`
	Score      int               `json:"score"`
	Prompt     string            `json:"prompt"`
	Options    []string          `json:"options,omitempty"`
	Kind       domain.Kind       `json:"kind"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

type answerView struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer string  `json:"correctAnswer"`
	Explanation   string  `json:"explanation"`
	Score         int     `json:"score"`
	TimeTaken     float64 `json:"timeTaken"`
	Last          bool    `json:"last"` // no more questions after this one
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("name")
	if username == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	var session *app.Session
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid start payload")
				continue
			}
			started, err := h.service.StartSession(r.Context(), username, payload.Category, payload.Count, payload.Kinds)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			session = started
			send <- questionMessage(session)
		case "answer":
			if session == nil {
				send <- errorMessage("no active session")
				continue
			}
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			record, err := h.service.SubmitAnswer(session, payload.Answer)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: answerView{
				Correct:       record.Correct,
				CorrectAnswer: record.CorrectAnswer,
				Explanation:   record.Explanation,
				Score:         session.Score(),
				TimeTaken:     record.TimeTaken,
				Last:          session.Index()+1 == session.Total(),
			}}
		case "next":
			if session == nil {
				send <- errorMessage("no active session")
				continue
			}
			if err := h.service.Advance(session); err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- questionMessage(session)
		case "finish":
			if session == nil {
				send <- errorMessage("no active session")
				continue
			}
			result, err := h.service.Finish(session)
			if err != nil {
				if errors.Is(err, domain.ErrSessionFinished) || errors.Is(err, domain.ErrAnswerPending) {
					send <- errorMessage(err.Error())
					continue
				}
				// leaderboard flush failed; the result still stands
				log.Printf("leaderboard save failed: %v", err)
			}
			send <- outboundMessage[any]{Type: "result", Payload: result}
			send <- outboundMessage[any]{Type: "leaderboard", Payload: h.service.Leaderboard(10)}
		case "leaderboard":
			limit := 10
			if len(inbound.Payload) > 0 {
				var payload leaderboardPayload
				if err := json.Unmarshal(inbound.Payload, &payload); err == nil && payload.Limit > 0 {
					limit = payload.Limit
				}
			}
			send <- outboundMessage[any]{Type: "leaderboard", Payload: h.service.Leaderboard(limit)}
		case "stats":
			stats, err := h.service.CatalogStats(r.Context())
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "stats", Payload: stats}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(send)
	<-writerDone
}

func questionMessage(session *app.Session) outboundMessage[any] {
	question, _ := session.Current()
	return outboundMessage[any]{Type: "question", Payload: questionView{
		Index:      session.Index(),
		Total:      session.Total(),
		Score:      session.Score(),
		Prompt:     question.Prompt,
		Options:    question.Options,
		Kind:       question.Kind,
		Difficulty: question.Difficulty,
	}}
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
