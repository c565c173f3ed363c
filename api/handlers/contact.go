package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/databases"
	"github.com/legalbridge/legalbridge-api/models"
)

// Contact handles contact record requests
type Contact struct {
	DB  databases.ContactDatabase
	Now func() time.Time
}

// CreateContactHandler stores a contact record
func (c Contact) CreateContactHandler(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Missing fields"})
		return
	}

	contact.ID = 0
	contact.Organisation = strings.TrimSpace(contact.Organisation)
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	if contact.Organisation == "" || contact.Name == "" || contact.Phone == "" {
		api.WriteJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Missing fields"})
		return
	}
	if contact.Timestamp == "" {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		contact.Timestamp = now().UTC().Format(time.RFC3339Nano)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := c.DB.InsertOne(ctx, contact)
	if err != nil {
		zap.S().Errorw("failed to insert contact", "organisation", contact.Organisation, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "Database error"})
		return
	}

	api.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Contact recorded", ID: id})
}
