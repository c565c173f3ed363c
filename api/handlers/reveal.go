package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/reveal"
)

// Reveal handles contact reveal sessions
type Reveal struct {
	Service *reveal.Service
}

type startRevealRequest struct {
	Organisation string `json:"organisation"`
}

type revealDetailsRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type confirmRevealRequest struct {
	Code string `json:"code"`
}

// revealStatus maps a reveal error to a status code and a message
func revealStatus(err error) (int, string) {
	switch {
	case errors.Is(err, reveal.ErrUnknownOrganisation):
		return http.StatusNotFound, "unknown organisation"
	case errors.Is(err, reveal.ErrMissingDetails):
		return http.StatusBadRequest, "name and contact are required"
	case errors.Is(err, reveal.ErrSessionNotFound):
		return http.StatusNotFound, "reveal session not found"
	case errors.Is(err, reveal.ErrCodeMismatch):
		return http.StatusBadRequest, "incorrect code"
	case errors.Is(err, reveal.ErrCodeExpired):
		return http.StatusGone, "code expired, request a new one"
	case errors.Is(err, reveal.ErrRateLimited):
		return http.StatusTooManyRequests, "too many codes requested, try again later"
	case errors.Is(err, reveal.ErrInvalidTransition):
		return http.StatusConflict, "reveal session is not in the right state"
	default:
		return http.StatusInternalServerError, "failed to process reveal"
	}
}

func writeRevealError(w http.ResponseWriter, err error) {
	status, message := revealStatus(err)
	config.ErrorStatus(message, status, w, err)
}

// StartRevealHandler opens a reveal session for an organisation
func (rv Reveal) StartRevealHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	var req startRevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := rv.Service.Start(ctx, visitor, req.Organisation)
	if err != nil {
		writeRevealError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, session)
}

// RevealDetailsHandler submits the visitor's name and contact and sends a code
func (rv Reveal) RevealDetailsHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	var req revealDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := rv.Service.SubmitDetails(ctx, visitor, mux.Vars(r)["session_id"], req.Name, req.Contact)
	if err != nil {
		writeRevealError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, session)
}

// ConfirmRevealHandler checks a code and returns the organisation's details on
// a match
func (rv Reveal) ConfirmRevealHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	var req confirmRevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	org, err := rv.Service.Confirm(ctx, visitor, mux.Vars(r)["session_id"], req.Code)
	if err != nil {
		writeRevealError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, org)
}

// CancelRevealHandler drops a reveal session
func (rv Reveal) CancelRevealHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := rv.Service.Cancel(ctx, visitor, mux.Vars(r)["session_id"]); err != nil {
		writeRevealError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Reveal cancelled"})
}
