package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/wallet-service/internal/observability"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestErrorMiddlewareWrapsDomainErrors(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewConflict("already exists", map[string]any{"id": "x"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", envelope.Error.Code)
	}
	if envelope.Error.Details["id"] != "x" {
		t.Fatalf("details = %v, want id x", envelope.Error.Details)
	}
}

func TestErrorMiddlewareHidesInternals(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("message = %q, want generic internal error", envelope.Error.Message)
	}
}

func TestRequestTimeoutReachesUserContext(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)
	app.Get("/deadline", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/deadline", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want deadline visible to handler", resp.StatusCode)
	}
}

func TestFeatureGateDisabledReads404(t *testing.T) {
	app := newTestApp()
	group := app.Group("/earn", FeatureGate(false))
	group.Get("/vaults", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": []string{}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/earn/vaults", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Code != "NOT_FOUND" {
		t.Fatalf("code = %s, want NOT_FOUND", envelope.Error.Code)
	}
}

func TestFeatureGateEnabledPassesThrough(t *testing.T) {
	app := newTestApp()
	group := app.Group("/earn", FeatureGate(true))
	group.Get("/vaults", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": []string{}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/earn/vaults", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
