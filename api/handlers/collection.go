package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/legalbridge/legalbridge-api/api"
	"github.com/legalbridge/legalbridge-api/config"
	"github.com/legalbridge/legalbridge-api/models"
	"github.com/legalbridge/legalbridge-api/store"
)

// maxCollectionBytes caps the body of a collection write
const maxCollectionBytes = 1 << 20

// Collection reads and replaces a visitor's persisted collections by key
type Collection struct {
	Collections *store.Collections
}

func (c Collection) lookup(w http.ResponseWriter, r *http.Request) (store.RawCollection, bool) {
	key := mux.Vars(r)["key"]
	rc, ok := c.Collections.Raw(key)
	if !ok {
		config.ErrorStatus("unknown collection", http.StatusNotFound, w, nil)
		return nil, false
	}
	return rc, true
}

// CollectionHandler returns a collection as stored, or its empty default
func (c Collection) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}
	rc, ok := c.lookup(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	raw, err := rc.LoadRaw(ctx, store.Scope(visitor))
	if err != nil {
		config.ErrorStatus("failed to load collection", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// UpdateCollectionHandler replaces a collection with the request body. Only
// the chat history and the generated documents accept writes.
func (c Collection) UpdateCollectionHandler(w http.ResponseWriter, r *http.Request) {
	visitor, ok := visitorID(w, r)
	if !ok {
		return
	}
	rc, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if !c.Collections.Writable(rc.Key()) {
		config.ErrorStatus("collection is read-only", http.StatusForbidden, w, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCollectionBytes))
	if err != nil {
		config.ErrorStatus("failed to read request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err = rc.SaveRaw(ctx, store.Scope(visitor), body)
	if errors.Is(err, store.ErrInvalidValue) {
		config.ErrorStatus("invalid collection value", http.StatusBadRequest, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to save collection", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Collection saved"})
}
