package api

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/legalbridge/legalbridge-api/metrics"
)

const slowRequest = time.Second

// MetricsMiddleware records every request in the collector and the
// prometheus request histogram, labelled by route template
func MetricsMiddleware(collector *MetricsCollector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)
			if route == "/metrics" || route == "/health" || route == "/api/metrics/summary" || route == "/api/metrics/routes" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			trace := RequestTrace{
				RequestID:     uuid.NewString(),
				Method:        r.Method,
				Route:         route,
				Status:        rw.statusCode,
				StartTime:     start,
				TotalDuration: duration,
			}
			collector.RecordTrace(trace)
			metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).
				Observe(duration.Seconds())

			if duration > slowRequest {
				zap.S().Warnw("slow request detected",
					"requestId", trace.RequestID,
					"method", r.Method,
					"route", route,
					"duration", duration,
					"status", rw.statusCode,
				)
			}
		})
	}
}

// routeTemplate returns the matched mux path template so ids do not split a
// route into many series
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// responseWriter captures the status code and keeps websocket upgrades working
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
