package http

import (
	"encoding/json"
	"log"
	"net/http"

	"pastfool/internal/app"
	"pastfool/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler serves one game screen per WebSocket connection.
type WSHandler struct {
	service  *app.GameService
	admin    *app.Admin
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, admin *app.Admin) *WSHandler {
	return &WSHandler{
		service: service,
		admin:   admin,
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

type answerPayload struct {
	Choice *bool `json:"choice"`
}

type hardModePayload struct {
	Enabled bool `json:"enabled"`
}

type importPayload struct {
	Text string `json:"text"`
}

type joinedPayload struct {
	SessionID string          `json:"sessionId"`
	PlayerID  string          `json:"playerId"`
	Title     string          `json:"title"`
	Tagline   string          `json:"tagline"`
	Snapshot  domain.Snapshot `json:"snapshot"`
}

type exportPayload struct {
	Filename string          `json:"filename"`
	Document json.RawMessage `json:"document"`
}

type importResult struct {
	Message string `json:"message"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into a game.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID, game, err := h.service.Open(r.Context(), playerID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	activeGames.Inc()
	defer activeGames.Dec()
	defer h.service.Close(sessionID)

	updates, cancel := game.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// a single writer goroutine owns conn writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	initial := <-updates
	send <- outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		SessionID: sessionID,
		PlayerID:  playerID,
		Title:     domain.Title,
		Tagline:   domain.Tagline,
		Snapshot:  initial,
	}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		send <- h.handle(game, inbound)
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) handle(game *app.Game, inbound inboundMessage) outboundMessage[any] {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Choice == nil {
			return errorMessage("invalid answer payload")
		}
		fb, _ := game.Answer(*payload.Choice)
		observeAnswer(fb.Outcome)
		return outboundMessage[any]{Type: "answerResult", Payload: fb}
	case "restart":
		return outboundMessage[any]{Type: "state", Payload: game.Restart()}
	case "hardMode":
		var payload hardModePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid hardMode payload")
		}
		return outboundMessage[any]{Type: "state", Payload: game.SetHardMode(payload.Enabled)}
	case "share":
		// the browser performs the native share or clipboard copy
		return outboundMessage[any]{Type: "share", Payload: game.ShareRequest()}
	case "export":
		doc, err := h.admin.ExportDocument()
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "export", Payload: exportPayload{Filename: h.admin.Filename(), Document: doc}}
	case "import":
		var payload importPayload
		_ = json.Unmarshal(inbound.Payload, &payload)
		msg, err := h.admin.ImportDocument(payload.Text)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "import", Payload: importResult{Message: msg}}
	default:
		return errorMessage("unsupported message type")
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
