package models

import "encoding/json"

// Contact holds the structure for the contacts table
type Contact struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Organisation string `json:"organisation" gorm:"type:text"`
	Name         string `json:"name" gorm:"type:text"`
	Phone        string `json:"phone" gorm:"type:text"`
	Timestamp    string `json:"timestamp" gorm:"type:text"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// ContactEvent is one entry of a visitor's contact log, written when a reveal
// is confirmed. Entries are append-only.
type ContactEvent struct {
	Organisation string `json:"organisation"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Timestamp    string `json:"timestamp"`
}

// UnmarshalJSON also accepts the organisation under "org", the key browser
// clients stored their contact log with
func (e *ContactEvent) UnmarshalJSON(b []byte) error {
	type event ContactEvent
	var v struct {
		event
		Org string `json:"org"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = ContactEvent(v.event)
	if e.Organisation == "" {
		e.Organisation = v.Org
	}
	return nil
}

// ContactCounts maps an organisation name to the number of confirmed reveals
type ContactCounts map[string]int

// RevealedSet maps an organisation name to whether its details are visible
type RevealedSet map[string]bool
