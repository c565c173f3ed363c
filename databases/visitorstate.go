package databases

// go generate: mockery --name VisitorStateDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/legalbridge/legalbridge-api/models"
)

const visitorStateName = "visitorState"

// ErrNoState is returned when a visitor has never saved the requested key
var ErrNoState = errors.New("no visitor state")

// VisitorStateDatabase contains the methods to use with the visitorState database
type VisitorStateDatabase interface {
	FindOne(ctx context.Context, visitorID, key string) (*models.VisitorState, error)
	Upsert(ctx context.Context, visitorID, key, value string) error
	DeleteOne(ctx context.Context, visitorID, key string) error
}

type visitorStateDatabase struct {
	db DatabaseHelper
}

// NewVisitorStateDatabase initializes a new instance of visitorState database with the provided db connection
func NewVisitorStateDatabase(db DatabaseHelper) VisitorStateDatabase {
	return &visitorStateDatabase{
		db: db,
	}
}

func visitorStateID(visitorID, key string) string {
	return visitorID + ":" + key
}

func (c *visitorStateDatabase) FindOne(ctx context.Context, visitorID, key string) (*models.VisitorState, error) {
	state := &models.VisitorState{}
	err := c.db.Collection(visitorStateName).FindOne(ctx, bson.M{"_id": visitorStateID(visitorID, key)}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (c *visitorStateDatabase) Upsert(ctx context.Context, visitorID, key, value string) error {
	doc := models.VisitorState{
		ID:        visitorStateID(visitorID, key),
		VisitorID: visitorID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return c.db.Collection(visitorStateName).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
}

func (c *visitorStateDatabase) DeleteOne(ctx context.Context, visitorID, key string) error {
	return c.db.Collection(visitorStateName).DeleteOne(ctx, bson.M{"_id": visitorStateID(visitorID, key)})
}
