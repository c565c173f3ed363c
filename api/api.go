// Package api holds the HTTP plumbing shared by the handlers: middleware,
// visitor tokens, rate limiting and request metrics.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteJSON writes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.S().Errorw("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
