package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerAllOK(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.Register(Probe{Name: "storage", Critical: true, Fn: func() error { return nil }})
	handler.Register(Probe{Name: "backend", Fn: func() error { return nil }})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Status != StatusOK {
		t.Errorf("expected status ok, got %s", report.Status)
	}
	if report.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", report.Version)
	}
	if len(report.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(report.Components))
	}
	if report.Components[0].Component != "storage" {
		t.Errorf("registration order must be preserved, got %s first", report.Components[0].Component)
	}
}

func TestHandlerNonCriticalFailureDegrades(t *testing.T) {
	handler := NewHandler("")
	handler.Register(Probe{Name: "storage", Critical: true, Fn: func() error { return nil }})
	handler.Register(Probe{Name: "backend", Fn: func() error { return errors.New("connection refused") }})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// degraded всё ещё 200: витрина обслуживает запросы из кэша
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for degraded, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Status != StatusDegraded {
		t.Errorf("expected status degraded, got %s", report.Status)
	}
	if report.Components[1].Status != StatusDegraded {
		t.Errorf("expected backend degraded, got %s", report.Components[1].Status)
	}
	if report.Components[1].Error != "connection refused" {
		t.Errorf("unexpected error message: %s", report.Components[1].Error)
	}
}

func TestHandlerCriticalFailureIsDown(t *testing.T) {
	handler := NewHandler("")
	handler.Register(Probe{Name: "storage", Critical: true, Fn: func() error { return errors.New("disk full") }})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Status != StatusDown {
		t.Errorf("expected status down, got %s", report.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := NewHandler("")
	handler.Register(Probe{Name: "backend", Fn: func() error { return errors.New("unreachable") }})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, req)

	// некритичная проба не мешает готовности
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ready" {
		t.Errorf("expected body 'ready', got %s", w.Body.String())
	}
}

func TestReadinessHandlerNotReady(t *testing.T) {
	handler := NewHandler("")
	handler.Register(Probe{Name: "storage", Critical: true, Fn: func() error { return errors.New("down") }})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if w.Body.String() != "not ready" {
		t.Errorf("expected body 'not ready', got %s", w.Body.String())
	}
}

func TestLivenessHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()
	LivenessHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %s", w.Body.String())
	}
}
