package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalbridge/legalbridge-api/models"
)

const visitor = Scope("6f1c2a4e-visitor")

func newRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return NewRedisBackend(NewRedisClient(mr.Addr(), "", 0)), mr
}

func backends(t *testing.T) map[string]Backend {
	r, _ := newRedisBackend(t)
	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"redis":  r,
	}
}

func TestRoundTripAllCollections(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := NewCollections(backend)

			chat := []models.ChatMessage{{Sender: models.SenderBot, Text: "Hello"}, {Sender: models.SenderUser, Text: "Bail?"}}
			docs := []models.GeneratedDocument{{ID: 1736467200000, Type: "legalNotice", Title: "Legal Notice – Rent", Content: "To,\nRavi", CreatedAt: "2025-01-10T00:00:00Z"}}
			counts := models.ContactCounts{"Delhi State Legal Services Authority": 2}
			log := []models.ContactEvent{{Organisation: "Delhi State Legal Services Authority", Name: "Asha", Phone: "99", Timestamp: "2025-01-10T00:00:00Z"}}
			revealed := models.RevealedSet{"Delhi State Legal Services Authority": true}

			require.NoError(t, c.ChatHistory.Save(ctx, visitor, chat))
			require.NoError(t, c.Documents.Save(ctx, visitor, docs))
			require.NoError(t, c.ContactCounts.Save(ctx, visitor, counts))
			require.NoError(t, c.ContactLog.Save(ctx, visitor, log))
			require.NoError(t, c.Revealed.Save(ctx, visitor, revealed))

			gotChat, err := c.ChatHistory.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, chat, gotChat)

			gotDocs, err := c.Documents.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, docs, gotDocs)

			gotCounts, err := c.ContactCounts.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, counts, gotCounts)

			gotLog, err := c.ContactLog.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, log, gotLog)

			gotRevealed, err := c.Revealed.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, revealed, gotRevealed)
		})
	}
}

func TestLoadMissingReturnsEmptyDefault(t *testing.T) {
	c := NewCollections(NewMemoryBackend())

	chat, err := c.ChatHistory.Load(context.Background(), visitor)
	require.NoError(t, err)
	assert.NotNil(t, chat)
	assert.Empty(t, chat)

	counts, err := c.ContactCounts.Load(context.Background(), visitor)
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestLoadCorruptedValueDiscardsIt(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := NewCollections(backend)
			for _, key := range Keys() {
				require.NoError(t, backend.Put(ctx, string(visitor), key, []byte("{not json")))
			}

			counts, err := c.ContactCounts.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, models.ContactCounts{}, counts)

			revealed, err := c.Revealed.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, models.RevealedSet{}, revealed)

			chat, err := c.ChatHistory.Load(ctx, visitor)
			require.NoError(t, err)
			assert.Equal(t, []models.ChatMessage{}, chat)

			for _, key := range []string{KeyContactCounts, KeyRevealed, KeyChatHistory} {
				_, ok, err := backend.Get(ctx, string(visitor), key)
				require.NoError(t, err)
				assert.False(t, ok, key)
			}
		})
	}
}

func TestLoadWrongShapeIsCorruption(t *testing.T) {
	backend := NewMemoryBackend()
	c := NewCollections(backend)
	require.NoError(t, backend.Put(context.Background(), string(visitor), KeyContactCounts, []byte(`["a","b"]`)))

	counts, err := c.ContactCounts.Load(context.Background(), visitor)

	assert.NoError(t, err)
	assert.Equal(t, models.ContactCounts{}, counts)
}

func TestScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryBackend())

	require.NoError(t, c.Revealed.Save(ctx, "visitor-a", models.RevealedSet{"X": true}))

	other, err := c.Revealed.Load(ctx, "visitor-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSaveReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryBackend())

	require.NoError(t, c.ContactCounts.Save(ctx, visitor, models.ContactCounts{"A": 1, "B": 1}))
	require.NoError(t, c.ContactCounts.Save(ctx, visitor, models.ContactCounts{"A": 2}))

	counts, err := c.ContactCounts.Load(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, models.ContactCounts{"A": 2}, counts)
}

type failingBackend struct{ MemoryBackend }

func (*failingBackend) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestLoadBackendErrorIsReturned(t *testing.T) {
	c := NewCollections(&failingBackend{})

	counts, err := c.ContactCounts.Load(context.Background(), visitor)

	assert.ErrorContains(t, err, "connection refused")
	assert.NotNil(t, counts)
}

func TestRawAccess(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryBackend())

	rc, ok := c.Raw(KeyContactLog)
	require.True(t, ok)
	_, ok = c.Raw("legalbridge_unknown")
	assert.False(t, ok)

	raw, err := rc.LoadRaw(ctx, visitor)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	err = rc.SaveRaw(ctx, visitor, json.RawMessage(`{"organisation":"X"}`))
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = rc.SaveRaw(ctx, visitor, json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, rc.SaveRaw(ctx, visitor, json.RawMessage(`[{"organisation":"X","name":"Asha","phone":"1","timestamp":"t"}]`)))
	log, err := c.ContactLog.Load(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, []models.ContactEvent{{Organisation: "X", Name: "Asha", Phone: "1", Timestamp: "t"}}, log)
}

func TestContactLogAcceptsOrgKey(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	c := NewCollections(backend)

	stored := `[{"org":"Delhi State Legal Services Authority","name":"Asha","phone":"99","timestamp":"2025-01-10T00:00:00Z"}]`
	require.NoError(t, backend.Put(ctx, string(visitor), KeyContactLog, []byte(stored)))

	log, err := c.ContactLog.Load(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "Delhi State Legal Services Authority", log[0].Organisation)

	raw, err := c.ContactLog.LoadRaw(ctx, visitor)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"organisation":"Delhi State Legal Services Authority","name":"Asha","phone":"99","timestamp":"2025-01-10T00:00:00Z"}]`, string(raw))
}

func TestRedisKeyLayout(t *testing.T) {
	backend, mr := newRedisBackend(t)
	c := NewCollections(backend)

	require.NoError(t, c.Revealed.Save(context.Background(), visitor, models.RevealedSet{"X": true}))

	v, err := mr.Get("legalbridge:" + string(visitor) + ":" + KeyRevealed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"X":true}`, v)
}
