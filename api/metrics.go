package api

import (
	"sort"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	RequestID     string        `json:"requestId"`
	Method        string        `json:"method"`
	Route         string        `json:"route"`
	Status        int           `json:"status"`
	StartTime     time.Time     `json:"startTime"`
	TotalDuration time.Duration `json:"totalDuration"`
}

// RouteMetrics aggregates metrics for a route template
type RouteMetrics struct {
	Method      string        `json:"method"`
	Route       string        `json:"route"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	P50Time     time.Duration `json:"p50Time"`
	P95Time     time.Duration `json:"p95Time"`
	P99Time     time.Duration `json:"p99Time"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsCollector aggregates request traces in memory. Traces are queued on
// a buffered channel and dropped when it is full, so recording never blocks a
// request.
type MetricsCollector struct {
	mu             sync.RWMutex
	traces         []RequestTrace
	maxTraces      int
	routeMetrics   map[string]*RouteMetrics
	windowStart    time.Time
	windowDuration time.Duration
	totalRequests  int64
	totalErrors    int64
	traceChan      chan RequestTrace
	stopChan       chan struct{}
	stopOnce       sync.Once
}

var (
	globalMetrics     *MetricsCollector
	globalMetricsOnce sync.Once
)

// NewMetricsCollector starts a collector keeping at most maxTraces traces from
// the last windowDuration
func NewMetricsCollector(maxTraces int, windowDuration time.Duration) *MetricsCollector {
	mc := &MetricsCollector{
		traces:         make([]RequestTrace, 0, maxTraces),
		maxTraces:      maxTraces,
		routeMetrics:   make(map[string]*RouteMetrics),
		windowStart:    time.Now(),
		windowDuration: windowDuration,
		traceChan:      make(chan RequestTrace, 1000),
		stopChan:       make(chan struct{}),
	}
	go mc.processTraces()
	return mc
}

// GetMetrics returns the process wide collector
func GetMetrics() *MetricsCollector {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewMetricsCollector(10000, time.Hour)
	})
	return globalMetrics
}

// Stop ends the background processing
func (mc *MetricsCollector) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopChan) })
}

// RecordTrace queues a trace without blocking
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	select {
	case mc.traceChan <- trace:
	default:
	}
}

func (mc *MetricsCollector) processTraces() {
	for {
		select {
		case trace := <-mc.traceChan:
			mc.processTrace(trace)
		case <-mc.stopChan:
			return
		}
	}
}

func (mc *MetricsCollector) processTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.traces) >= mc.maxTraces {
		mc.traces = mc.traces[1:]
	}
	mc.traces = append(mc.traces, trace)

	key := trace.Method + " " + trace.Route
	rm, ok := mc.routeMetrics[key]
	if !ok {
		rm = &RouteMetrics{Method: trace.Method, Route: trace.Route, MinTime: trace.TotalDuration}
		mc.routeMetrics[key] = rm
	}

	rm.Count++
	rm.TotalTime += trace.TotalDuration
	rm.AvgTime = rm.TotalTime / time.Duration(rm.Count)
	rm.LastRequest = trace.StartTime
	if trace.TotalDuration < rm.MinTime {
		rm.MinTime = trace.TotalDuration
	}
	if trace.TotalDuration > rm.MaxTime {
		rm.MaxTime = trace.TotalDuration
	}
	if trace.Status >= 400 {
		rm.ErrorCount++
		mc.totalErrors++
	}
	mc.totalRequests++

	// percentiles are recomputed every 100 requests of a route
	if rm.Count == 1 || rm.Count%100 == 0 {
		mc.calculatePercentiles(key, rm)
	}
}

func (mc *MetricsCollector) calculatePercentiles(key string, rm *RouteMetrics) {
	var durations []time.Duration
	for _, t := range mc.traces {
		if t.Method+" "+t.Route == key {
			durations = append(durations, t.TotalDuration)
		}
	}
	if len(durations) == 0 {
		return
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	at := func(p float64) time.Duration {
		idx := int(float64(len(durations)) * p)
		if idx >= len(durations) {
			idx = len(durations) - 1
		}
		return durations[idx]
	}
	rm.P50Time = at(0.50)
	rm.P95Time = at(0.95)
	rm.P99Time = at(0.99)
}

// Prune drops traces older than the window and starts a new window when the
// current one has passed
func (mc *MetricsCollector) Prune(now time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	cutoff := now.Add(-mc.windowDuration)
	kept := mc.traces[:0]
	for _, t := range mc.traces {
		if t.StartTime.After(cutoff) {
			kept = append(kept, t)
		}
	}
	mc.traces = kept

	if now.Sub(mc.windowStart) > mc.windowDuration {
		mc.windowStart = now
	}
}

// GetSummary returns overall request metrics for the current window
func (mc *MetricsCollector) GetSummary() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	elapsed := time.Since(mc.windowStart)
	if elapsed > mc.windowDuration {
		elapsed = mc.windowDuration
	}
	var tps float64
	if elapsed.Seconds() > 0 {
		tps = float64(mc.totalRequests) / elapsed.Seconds()
	}
	var errorRate float64
	if mc.totalRequests > 0 {
		errorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}

	return map[string]interface{}{
		"totalRequests": mc.totalRequests,
		"totalErrors":   mc.totalErrors,
		"errorRate":     errorRate,
		"tps":           tps,
		"windowStart":   mc.windowStart,
		"windowEnd":     mc.windowStart.Add(mc.windowDuration),
		"routeCount":    len(mc.routeMetrics),
		"traceCount":    len(mc.traces),
	}
}

// GetSlowestRoutes returns routes by descending average time
func (mc *MetricsCollector) GetSlowestRoutes(limit, offset int) []RouteMetrics {
	return mc.sortedRoutes(limit, offset, func(a, b RouteMetrics) bool { return a.AvgTime > b.AvgTime })
}

// GetMostFrequentRoutes returns routes by descending request count
func (mc *MetricsCollector) GetMostFrequentRoutes(limit, offset int) []RouteMetrics {
	return mc.sortedRoutes(limit, offset, func(a, b RouteMetrics) bool { return a.Count > b.Count })
}

func (mc *MetricsCollector) sortedRoutes(limit, offset int, less func(a, b RouteMetrics) bool) []RouteMetrics {
	mc.mu.RLock()
	routes := make([]RouteMetrics, 0, len(mc.routeMetrics))
	for _, rm := range mc.routeMetrics {
		routes = append(routes, *rm)
	}
	mc.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		if less(routes[i], routes[j]) == less(routes[j], routes[i]) {
			return routes[i].Method+routes[i].Route < routes[j].Method+routes[j].Route
		}
		return less(routes[i], routes[j])
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(routes) {
		return []RouteMetrics{}
	}
	if limit < 0 || limit > len(routes)-offset {
		limit = len(routes) - offset
	}
	return routes[offset : offset+limit]
}
