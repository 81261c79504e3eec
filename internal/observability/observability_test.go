package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/gambler-service/internal/config"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "bogus"} {
		logger, err := NewLogger(config.LoggerConfig{Level: level})
		if err != nil {
			t.Fatalf("NewLogger(%q) error = %v", level, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%q) returned nil", level)
		}
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/auth/login", http.MethodPost, 200, time.Millisecond)
	m.RecordRequest("/auth/login", http.MethodPost, 200, time.Millisecond)
	m.RecordError("/auth/logout", http.MethodGet, "UNAUTHORIZED")

	if got := m.Requests("/auth/login", http.MethodPost, 200); got != 2 {
		t.Errorf("Requests() = %d, want 2", got)
	}
	if got := m.Errors("/auth/logout", http.MethodGet, "UNAUTHORIZED"); got != 1 {
		t.Errorf("Errors() = %d, want 1", got)
	}
	requests, errs := m.Snapshot()
	if len(requests) != 1 || len(errs) != 1 {
		t.Errorf("Snapshot() = %v, %v", requests, errs)
	}

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", http.MethodGet, 200, 0)
	nilMetrics.RecordError("/", http.MethodGet, "X")
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusNoContent) {
		t.Errorf("status field = %v", got)
	}
	if got := metrics.Requests("/health/live", http.MethodGet, http.StatusNoContent); got != 1 {
		t.Errorf("Requests() = %d, want 1", got)
	}
}
