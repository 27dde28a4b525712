package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pasar/internal/middleware"
	"pasar/internal/webhook"
)

var secret = []byte("whsec_test")

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/hook", middleware.VerifySignature(secret, "", zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func post(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(middleware.DefaultSignatureHeader, signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestVerifySignatureAccepts(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	resp := post(t, newApp(), body, webhook.Sign(body, secret))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(got))
}

func TestVerifySignatureRejects(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	tests := []struct {
		name      string
		signature string
	}{
		{"missing", ""},
		{"garbage", "not-hex"},
		{"wrong secret", webhook.Sign(body, []byte("other"))},
		{"other body", webhook.Sign([]byte(`{}`), secret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, newApp(), body, tt.signature)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			raw, _ := io.ReadAll(resp.Body)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(raw, &payload))
			assert.Equal(t, "error", payload["status"])
			assert.Equal(t, "invalid signature", payload["message"])
			assert.NotContains(t, string(raw), string(secret))
			assert.NotContains(t, string(raw), webhook.Sign(body, secret))
		})
	}
}
