package store

import (
	"context"
	"errors"

	"github.com/legalbridge/legalbridge-api/databases"
)

// MongoBackend stores values in the visitorState mongo collection
type MongoBackend struct {
	db databases.VisitorStateDatabase
}

// NewMongoBackend wraps the visitor state database
func NewMongoBackend(db databases.VisitorStateDatabase) *MongoBackend {
	return &MongoBackend{db: db}
}

// Get fetches the value for a visitor and key
func (m *MongoBackend) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	state, err := m.db.FindOne(ctx, namespace, key)
	if errors.Is(err, databases.ErrNoState) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(state.Value), true, nil
}

// Put upserts the value for a visitor and key
func (m *MongoBackend) Put(ctx context.Context, namespace, key string, value []byte) error {
	return m.db.Upsert(ctx, namespace, key, string(value))
}

// Delete removes the value for a visitor and key
func (m *MongoBackend) Delete(ctx context.Context, namespace, key string) error {
	return m.db.DeleteOne(ctx, namespace, key)
}
