package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/notify"
)

// asVisitor sets the visitor the way the visitor middleware does
func asVisitor(req *http.Request, visitor string) *http.Request {
	return req.WithContext(api.WithVisitor(req.Context(), visitor))
}

func errorBody(t *testing.T, message string, err error) string {
	t.Helper()
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	b, jsonErr := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errMsg}})
	if jsonErr != nil {
		t.Fatal(jsonErr)
	}
	return string(b)
}

// memSessions keeps reveal sessions in a map
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]models.PendingVerification
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]models.PendingVerification{}}
}

func (m *memSessions) FindOne(_ context.Context, id string) (*models.PendingVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &s, nil
}

func (m *memSessions) InsertOne(_ context.Context, s models.PendingVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) ReplaceOne(ctx context.Context, s models.PendingVerification) error {
	return m.InsertOne(ctx, s)
}

func (m *memSessions) IncrementAttempts(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[id]
	s.Attempts++
	m.sessions[id] = s
	return nil
}

func (m *memSessions) Transition(_ context.Context, id, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.State != from {
		return false, nil
	}
	s.State = to
	m.sessions[id] = s
	return true, nil
}

func (m *memSessions) DeleteOne(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// capturingNotifier records delivered messages
type capturingNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (c *capturingNotifier) Deliver(_ context.Context, msg notify.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *capturingNotifier) last() notify.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return notify.Message{}
	}
	return c.sent[len(c.sent)-1]
}
