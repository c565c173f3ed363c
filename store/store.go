// Package store persists the per-visitor collections: chat history, generated
// documents, contact counts, the contact log and the revealed set. Each
// collection is one JSON value saved under a fixed key, replaced as a whole on
// every save.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Keys of the persisted collections
const (
	KeyChatHistory   = "legalbridge_chat_history"
	KeyDocuments     = "legalbridge_documents"
	KeyContactCounts = "legalbridge_contact_counts"
	KeyContactLog    = "legalbridge_contact_log"
	KeyRevealed      = "legalbridge_revealed"
)

// ErrInvalidValue is returned when a raw value does not decode into the
// collection's type
var ErrInvalidValue = errors.New("invalid collection value")

// Backend stores raw values under a namespace and a key
type Backend interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
}

// Scope namespaces collections, one scope per visitor
type Scope string

// Collection is a typed value persisted under one key
type Collection[T any] struct {
	key     string
	backend Backend
	empty   func() T
}

// NewCollection returns a collection stored under key. empty builds the default
// returned for a missing or corrupted value.
func NewCollection[T any](backend Backend, key string, empty func() T) *Collection[T] {
	return &Collection[T]{key: key, backend: backend, empty: empty}
}

// Key is the name the collection is stored under
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the stored value. A missing value yields the empty default, a
// value that does not decode is deleted and also yields the empty default.
func (c *Collection[T]) Load(ctx context.Context, scope Scope) (T, error) {
	raw, ok, err := c.backend.Get(ctx, string(scope), c.key)
	if err != nil {
		return c.empty(), fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !ok || isNull(raw) {
		return c.empty(), nil
	}

	v := c.empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		zap.S().Warnw("discarding corrupted collection",
			"key", c.key,
			"scope", scope,
			"error", err,
		)
		if delErr := c.backend.Delete(ctx, string(scope), c.key); delErr != nil {
			zap.S().Errorw("failed to delete corrupted collection", "key", c.key, "error", delErr)
		}
		return c.empty(), nil
	}
	return v, nil
}

// Save replaces the stored value
func (c *Collection[T]) Save(ctx context.Context, scope Scope, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.backend.Put(ctx, string(scope), c.key, b); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// LoadRaw returns the stored value as JSON, the empty default when missing
func (c *Collection[T]) LoadRaw(ctx context.Context, scope Scope) (json.RawMessage, error) {
	v, err := c.Load(ctx, scope)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// SaveRaw decodes raw into the collection's type and saves it
func (c *Collection[T]) SaveRaw(ctx context.Context, scope Scope, raw json.RawMessage) error {
	if isNull(raw) {
		return fmt.Errorf("%w: null", ErrInvalidValue)
	}
	v := c.empty()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return c.Save(ctx, scope, v)
}

func isNull(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
