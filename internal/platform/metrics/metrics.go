// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics owns the Prometheus registry of the API.
//
// Every method is nil-safe so services can be constructed without metrics in
// tests and in tools.
package metrics

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/ascender/internal/platform/middleware"
)

const namespace = "ascender"

// Metrics groups the collectors exported at /metrics.
type Metrics struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	rateLimitDenied     *prometheus.CounterVec
	moderationTransited *prometheus.CounterVec
	viewIncrements      *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	rateLimitDenied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_denied_total",
		Help:      "Requests denied by a fixed-window rate limit profile",
	}, []string{"profile"})

	moderationTransited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_transitions_total",
		Help:      "Moderation decisions by entity and resulting status",
	}, []string{"entity", "status"})

	viewIncrements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_increments_total",
		Help:      "View counter attempts by entity and result",
	}, []string{"entity", "result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "goroutines",
		Help:      "Number of live goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, rateLimitDenied, moderationTransited, viewIncrements, goroutines)

	return &Metrics{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		rateLimitDenied:     rateLimitDenied,
		moderationTransited: moderationTransited,
		viewIncrements:      viewIncrements,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one finished request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, route, labelStatus).Inc()
}

// RateLimited counts a denial for a limiter profile.
func (m *Metrics) RateLimited(profile string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.WithLabelValues(profile).Inc()
}

// ModerationTransition counts an admin decision on a work, chapter or role request.
func (m *Metrics) ModerationTransition(entity, status string) {
	if m == nil {
		return
	}
	m.moderationTransited.WithLabelValues(entity, status).Inc()
}

// ViewIncrement counts a view attempt; skipped marks deduplicated hits.
func (m *Metrics) ViewIncrement(entity string, skipped bool) {
	if m == nil {
		return
	}
	result := "counted"
	if skipped {
		result = "skipped"
	}
	m.viewIncrements.WithLabelValues(entity, result).Inc()
}

// Instrument records request count and latency labelled by chi route pattern,
// so /works/{id} is one series regardless of the id.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &middleware.StatusRecorder{ResponseWriter: writer, Status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.ObserveHTTPRequest(request.Method, route, recorder.Status, time.Since(startTime))
	})
}
