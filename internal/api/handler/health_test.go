package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestReadiness_AllHealthy(t *testing.T) {
	handler := NewReadinessHandler(
		DependencyCheck{Name: "mongodb", Check: func(ctx context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Check: func(ctx context.Context) error { return nil }},
	)

	c, rec := newJSONContext(http.MethodGet, "/health/ready", nil)
	if err := handler.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	handler := NewReadinessHandler(
		DependencyCheck{Name: "mongodb", Check: func(ctx context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Check: func(ctx context.Context) error { return errors.New("connection refused") }},
	)

	c, rec := newJSONContext(http.MethodGet, "/health/ready", nil)
	if err := handler.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Error != "connection refused" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
