package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const timeoutBody = `{"error": "Request timeout", "message": "The request took too long to process"}`

// TimeoutMiddleware bounds request handling to timeout. Websocket upgrades are
// long lived and pass through untouched, as does any request whose
// "METHOD path" is listed in untimed.
func TimeoutMiddleware(timeout time.Duration, untimed ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(untimed))
	for _, route := range untimed {
		skip[route] = true
	}
	return func(next http.Handler) http.Handler {
		limited := http.TimeoutHandler(next, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) || skip[r.Method+" "+r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			limited.ServeHTTP(w, r)
			if elapsed := time.Since(start); elapsed >= timeout {
				zap.S().Warnw("request timeout",
					"path", r.URL.Path,
					"method", r.Method,
					"timeout", timeout)
			}
		})
	}
}
