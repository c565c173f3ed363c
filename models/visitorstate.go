package models

import "time"

// VisitorState holds the structure for the visitorState collection in mongo.
// Value is the raw JSON of one persisted collection.
type VisitorState struct {
	ID        string    `bson:"_id"`
	VisitorID string    `bson:"visitorId"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
