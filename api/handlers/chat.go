package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/chat"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Chat handles assistant requests
type Chat struct {
	Service *chat.Service
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatFrame struct {
	Messages []models.ChatMessage `json:"messages,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// ChatHandler returns the visitor's transcript, seeding the greeting for a new
// visitor
func (c Chat) ChatHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	transcript, err := c.Service.Initialize(ctx, visitor)
	if err != nil {
		config.ErrorStatus("failed to load chat history", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, transcript)
}

// SendChatHandler sends a visitor message and returns the updated transcript
func (c Chat) SendChatHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	transcript, err := c.Service.Send(r.Context(), visitor, req.Text)
	if errors.Is(err, chat.ErrBusy) {
		config.ErrorStatus("a reply is already being generated", http.StatusConflict, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to send chat message", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, transcript)
}

// ClearChatHandler drops the visitor's transcript
func (c Chat) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Service.Clear(ctx, visitor); err != nil {
		config.ErrorStatus("failed to clear chat history", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Chat cleared"})
}

// QuickQuestionsHandler returns the suggested prompts
func (c Chat) QuickQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, chat.QuickQuestions())
}

// ChatWebSocketHandler serves the chat over a websocket. The transcript is sent
// on connect and after every message the visitor sends.
func (c Chat) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := api.WithQueryTimeout(context.Background())
	transcript, err := c.Service.Initialize(ctx, visitor)
	cancel()
	if err != nil {
		zap.S().Errorw("failed to load chat history", "visitor", visitor, "error", err)
		_ = conn.WriteJSON(chatFrame{Error: "failed to load chat history"})
		return
	}
	if err := conn.WriteJSON(chatFrame{Messages: transcript}); err != nil {
		return
	}

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.S().Debugw("chat websocket closed", "visitor", visitor, "error", err)
			}
			return
		}

		transcript, err := c.Service.Send(context.Background(), visitor, req.Text)

		frame := chatFrame{Messages: transcript}
		switch {
		case errors.Is(err, chat.ErrBusy):
			frame = chatFrame{Error: "a reply is already being generated"}
		case err != nil:
			zap.S().Errorw("failed to send chat message", "visitor", visitor, "error", err)
			frame = chatFrame{Error: "failed to send chat message"}
		}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}
