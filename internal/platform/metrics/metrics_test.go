// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestMetrics_NilSafe verifies a nil registry is a silent no-op.
*/
func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RateLimited("comment")
		m.ModerationTransition("work", "approved")
		m.ViewIncrement("chapter", true)
	})

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

/*
TestMetrics_Counters verifies the domain counters.
*/
func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.RateLimited("login")
	m.RateLimited("login")
	m.ModerationTransition("chapter", "rejected")
	m.ViewIncrement("work", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rateLimitDenied.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.moderationTransited.WithLabelValues("chapter", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.viewIncrements.WithLabelValues("work", "counted")))
}

/*
TestMetrics_Instrument verifies requests are labelled by route pattern.
*/
func TestMetrics_Instrument(t *testing.T) {
	m := New()
	router := chi.NewRouter()
	router.Use(m.Instrument)
	router.Get("/works/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/works/a", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/works/b", nil))

	require.Equal(t, 2.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/works/{id}", "418")))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, recorder.Body.String(), "ascender_http_requests_total")
}
