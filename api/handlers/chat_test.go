package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalbridge/legalbridge-api/api/handlers"
	"github.com/legalbridge/legalbridge-api/chat"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

type cannedGenerator struct {
	reply string
	err   error
}

func (g cannedGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

func newChatHandler(gen chat.Generator) handlers.Chat {
	collections := store.NewCollections(store.NewMemoryBackend())
	return handlers.Chat{Service: chat.NewService(gen, collections.ChatHistory)}
}

func decodeTranscript(t *testing.T, body []byte) []models.ChatMessage {
	t.Helper()
	var transcript []models.ChatMessage
	require.NoError(t, json.Unmarshal(body, &transcript))
	return transcript
}

func TestChat_ChatHandlerSeedsGreeting(t *testing.T) {
	c := newChatHandler(cannedGenerator{reply: "hello"})

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ChatHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("GET", "/api/chat", nil), "visitor-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	transcript := decodeTranscript(t, rr.Body.Bytes())
	require.Len(t, transcript, 1)
	assert.Equal(t, models.ChatMessage{Sender: models.SenderBot, Text: chat.Greeting}, transcript[0])
}

func TestChat_SendChatHandler(t *testing.T) {
	c := newChatHandler(cannedGenerator{reply: "File a **complaint** under [Section 35]"})

	req := asVisitor(httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"text":"My landlord kept my deposit"}`)), "visitor-1")
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.SendChatHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	transcript := decodeTranscript(t, rr.Body.Bytes())
	require.Len(t, transcript, 3)
	assert.Equal(t, models.ChatMessage{Sender: models.SenderUser, Text: "My landlord kept my deposit"}, transcript[1])
	assert.Equal(t, chat.Disclaimer+"File a complaint under <b>Section 35</b>", transcript[2].Text)
}

func TestChat_SendChatHandlerBadBody(t *testing.T) {
	c := newChatHandler(cannedGenerator{})

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.SendChatHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("POST", "/api/chat", strings.NewReader(`text`)), "visitor-1"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChat_ClearChatHandler(t *testing.T) {
	c := newChatHandler(cannedGenerator{reply: "ok"})

	req := asVisitor(httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"text":"hi"}`)), "visitor-1")
	http.HandlerFunc(c.SendChatHandler).ServeHTTP(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ClearChatHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("DELETE", "/api/chat", nil), "visitor-1"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	http.HandlerFunc(c.ChatHandler).ServeHTTP(rr, asVisitor(httptest.NewRequest("GET", "/api/chat", nil), "visitor-1"))
	assert.Len(t, decodeTranscript(t, rr.Body.Bytes()), 1)
}

func TestChat_QuickQuestionsHandler(t *testing.T) {
	c := newChatHandler(nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.QuickQuestionsHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/api/chat/quick-questions", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.QuickQuestion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, chat.QuickQuestions(), got)
}

func TestChat_ChatWebSocketHandler(t *testing.T) {
	c := newChatHandler(cannedGenerator{reply: "Visit the nearest legal services authority"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.ChatWebSocketHandler(w, asVisitor(r, "visitor-1"))
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var frame struct {
		Messages []models.ChatMessage `json:"messages"`
		Error    string               `json:"error"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	require.Len(t, frame.Messages, 1)
	assert.Equal(t, chat.Greeting, frame.Messages[0].Text)

	require.NoError(t, conn.WriteJSON(map[string]string{"text": "Where can I get free help?"}))
	frame.Messages = nil
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Empty(t, frame.Error)
	require.Len(t, frame.Messages, 3)
	assert.Equal(t, models.SenderBot, frame.Messages[2].Sender)
	assert.Contains(t, frame.Messages[2].Text, "Visit the nearest legal services authority")
}

func TestChat_ChatWebSocketHandlerRequiresVisitor(t *testing.T) {
	c := newChatHandler(nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(c.ChatWebSocketHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/ws/chat", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
