package databases

// go generate: mockery --name PendingVerificationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/legalbridge/legalbridge-api/models"
)

const pendingVerificationName = "pendingVerifications"

// PendingVerificationDatabase contains the methods to use with the pendingVerification database
type PendingVerificationDatabase interface {
	FindOne(ctx context.Context, id string) (*models.PendingVerification, error)
	InsertOne(ctx context.Context, pendingVerification models.PendingVerification) error
	ReplaceOne(ctx context.Context, pendingVerification models.PendingVerification) error
	IncrementAttempts(ctx context.Context, id string) error
	Transition(ctx context.Context, id, from, to string) (bool, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type pendingVerificationDatabase struct {
	db DatabaseHelper
}

// NewPendingVerificationDatabase initializes a new instance of pendingVerification database with the provided db connection
func NewPendingVerificationDatabase(db DatabaseHelper) PendingVerificationDatabase {
	return &pendingVerificationDatabase{
		db: db,
	}
}

func (c *pendingVerificationDatabase) FindOne(ctx context.Context, id string) (*models.PendingVerification, error) {
	pendingVerification := &models.PendingVerification{}
	err := c.db.Collection(pendingVerificationName).FindOne(ctx, bson.M{"_id": id}).Decode(&pendingVerification)
	if err != nil {
		return nil, err
	}
	return pendingVerification, nil
}

func (c *pendingVerificationDatabase) InsertOne(ctx context.Context, pendingVerification models.PendingVerification) error {
	_, err := c.db.Collection(pendingVerificationName).InsertOne(ctx, pendingVerification)
	return err
}

func (c *pendingVerificationDatabase) ReplaceOne(ctx context.Context, pendingVerification models.PendingVerification) error {
	return c.db.Collection(pendingVerificationName).ReplaceOne(ctx, bson.M{"_id": pendingVerification.ID}, pendingVerification)
}

func (c *pendingVerificationDatabase) IncrementAttempts(ctx context.Context, id string) error {
	_, err := c.db.Collection(pendingVerificationName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"attempts": 1}})
	return err
}

// Transition moves a session from one state to another. It reports false when
// the session was no longer in the from state.
func (c *pendingVerificationDatabase) Transition(ctx context.Context, id, from, to string) (bool, error) {
	matched, err := c.db.Collection(pendingVerificationName).UpdateOne(ctx, bson.M{"_id": id, "state": from}, bson.M{"$set": bson.M{"state": to}})
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (c *pendingVerificationDatabase) DeleteOne(ctx context.Context, id string) error {
	return c.db.Collection(pendingVerificationName).DeleteOne(ctx, bson.M{"_id": id})
}

// DeleteExpired removes every session whose code expired before the given time
func (c *pendingVerificationDatabase) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return c.db.Collection(pendingVerificationName).DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": before}})
}
