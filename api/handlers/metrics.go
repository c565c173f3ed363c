package handlers

import (
	"net/http"
	"strconv"

	"github.com/legalbridge/legalbridge-api/api"
)

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"route":       route.Route,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"p50Time":     route.P50Time.Milliseconds(),
			"p95Time":     route.P95Time.Milliseconds(),
			"p99Time":     route.P99Time.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// MetricsHandler handles request metrics requests
type MetricsHandler struct {
	Collector *api.MetricsCollector
}

func (m MetricsHandler) collector() *api.MetricsCollector {
	if m.Collector != nil {
		return m.Collector
	}
	return api.GetMetrics()
}

// GetMetricsSummary returns the summary metrics of the current window
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, m.collector().GetSummary())
}

// maxRouteLimit caps ?limit= on the route metrics
const maxRouteLimit = 100

// GetRouteMetrics returns the slowest and most frequent routes, paginated with
// ?limit= and ?offset=
func (m MetricsHandler) GetRouteMetrics(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = min(parsed, maxRouteLimit)
		}
	}
	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	mc := m.collector()
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"slowest":      formatRouteMetrics(mc.GetSlowestRoutes(limit, offset)),
		"mostFrequent": formatRouteMetrics(mc.GetMostFrequentRoutes(limit, offset)),
		"pagination": map[string]interface{}{
			"limit":  limit,
			"offset": offset,
		},
	})
}
