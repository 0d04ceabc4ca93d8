package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/match/:matchId", EnsureMatchID(), func(c *fiber.Ctx) error {
		return c.SendString(MatchID(c))
	})
	app.Get("/ws/:matchId", EnsureMatchID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("wsMatchID").(string))
	})
	return app
}

func TestEnsureMatchID(t *testing.T) {
	app := newTestApp()
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantBody   string
	}{
		{"canonical", "0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11", fiber.StatusOK, "0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11"},
		{"uppercase is canonicalised", "0B7E4C5E-3F0A-4D7E-9A53-6F4F1B2C8D11", fiber.StatusOK, "0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11"},
		{"not a uuid", "game-1", fiber.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/match/"+tt.id, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody == "" {
				return
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/ws/0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}

func TestWebSocketUpgradePassesMatchID(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/ws/0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "0b7e4c5e-3f0a-4d7e-9a53-6f4f1b2c8d11" {
		t.Errorf("body = %q", body)
	}
}
