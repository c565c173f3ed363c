package store

import (
	"context"
	"encoding/json"

	"github.com/legalbridge/legalbridge-api/models"
)

// RawCollection reads and writes a collection as JSON
type RawCollection interface {
	Key() string
	LoadRaw(ctx context.Context, scope Scope) (json.RawMessage, error)
	SaveRaw(ctx context.Context, scope Scope, raw json.RawMessage) error
}

// Collections groups the five persisted collections over one backend
type Collections struct {
	ChatHistory   *Collection[[]models.ChatMessage]
	Documents     *Collection[[]models.GeneratedDocument]
	ContactCounts *Collection[models.ContactCounts]
	ContactLog    *Collection[[]models.ContactEvent]
	Revealed      *Collection[models.RevealedSet]

	byKey    map[string]RawCollection
	writable map[string]bool
}

// NewCollections binds the collections to a backend
func NewCollections(backend Backend) *Collections {
	c := &Collections{
		ChatHistory: NewCollection(backend, KeyChatHistory, func() []models.ChatMessage {
			return []models.ChatMessage{}
		}),
		Documents: NewCollection(backend, KeyDocuments, func() []models.GeneratedDocument {
			return []models.GeneratedDocument{}
		}),
		ContactCounts: NewCollection(backend, KeyContactCounts, func() models.ContactCounts {
			return models.ContactCounts{}
		}),
		ContactLog: NewCollection(backend, KeyContactLog, func() []models.ContactEvent {
			return []models.ContactEvent{}
		}),
		Revealed: NewCollection(backend, KeyRevealed, func() models.RevealedSet {
			return models.RevealedSet{}
		}),
	}
	c.byKey = map[string]RawCollection{
		KeyChatHistory:   c.ChatHistory,
		KeyDocuments:     c.Documents,
		KeyContactCounts: c.ContactCounts,
		KeyContactLog:    c.ContactLog,
		KeyRevealed:      c.Revealed,
	}
	// contact counts, the contact log and the revealed set change only
	// through a confirmed reveal
	c.writable = map[string]bool{
		KeyChatHistory: true,
		KeyDocuments:   true,
	}
	return c
}

// Writable reports whether a collection may be replaced by a client
func (c *Collections) Writable(key string) bool {
	return c.writable[key]
}

// Raw looks a collection up by its key
func (c *Collections) Raw(key string) (RawCollection, bool) {
	rc, ok := c.byKey[key]
	return rc, ok
}

// Keys lists the collection keys
func Keys() []string {
	return []string{KeyChatHistory, KeyDocuments, KeyContactCounts, KeyContactLog, KeyRevealed}
}
