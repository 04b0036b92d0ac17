package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/dto"
	"github.com/ManojPokuru/course-creator-plugin/internal/handler"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		cache  domain.Cache
		status int
		want   dto.HealthResponse
	}{
		{"no cache", nil, http.StatusOK, dto.HealthResponse{Status: "ok", Cache: "disabled", Model: "gemini-2.0-flash"}},
		{"cache up", pingCache{}, http.StatusOK, dto.HealthResponse{Status: "ok", Cache: "ok", Model: "gemini-2.0-flash"}},
		{"cache down", pingCache{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Cache: "unreachable", Model: "gemini-2.0-flash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", handler.NewHealthHandler(tt.cache, "gemini-2.0-flash").Health)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.want, decode[dto.HealthResponse](t, resp.Body))
		})
	}
}
