package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/models"
)

// Visitor issues anonymous visitor identities
type Visitor struct {
	Issuer *api.TokenIssuer
}

// CreateVisitorHandler issues a token for a new visitor
func (v Visitor) CreateVisitorHandler(w http.ResponseWriter, r *http.Request) {
	token, visitorID, err := v.Issuer.Issue()
	if err != nil {
		config.ErrorStatus("failed to issue visitor token", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Debugw("issued visitor token", "visitor", visitorID)

	b, err := json.Marshal(models.VisitorTokenResponse{Token: token, VisitorID: visitorID})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// visitorID returns the visitor set by the visitor middleware or writes a 401
func visitorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := api.VisitorFromContext(r.Context())
	if !ok {
		config.ErrorStatus("missing visitor", http.StatusUnauthorized, w, api.ErrInvalidToken)
		return "", false
	}
	return id, true
}
