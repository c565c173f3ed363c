package models

import "time"

// PendingVerification holds the structure for the pendingVerifications collection
// in mongo. One document tracks one contact-reveal session; only the bcrypt hash
// of the issued code is stored.
type PendingVerification struct {
	ID           string    `json:"_id" bson:"_id"`
	VisitorID    string    `json:"visitorId" bson:"visitorId"`
	Organisation string    `json:"organisation" bson:"organisation"`
	State        string    `json:"state" bson:"state"`
	Name         string    `json:"name" bson:"name"`
	Contact      string    `json:"contact" bson:"contact"`
	Channel      string    `json:"channel" bson:"channel"`
	CodeHash     string    `json:"-" bson:"codeHash"`
	Attempts     int       `json:"attempts" bson:"attempts"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt" bson:"expiresAt"`
}
