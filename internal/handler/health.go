package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
	"github.com/ManojPokuru/course-creator-plugin/internal/dto"
	"github.com/ManojPokuru/course-creator-plugin/internal/logger"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports liveness and the state of the optional cache.
type HealthHandler struct {
	cache domain.Cache
	model string
}

// NewHealthHandler accepts a nil cache when Redis is not configured.
func NewHealthHandler(cache domain.Cache, model string) *HealthHandler {
	return &HealthHandler{cache: cache, model: model}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Cache: "disabled", Model: h.model}
	if h.cache == nil {
		return c.JSON(resp)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Cache ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Cache = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	resp.Cache = "ok"
	return c.JSON(resp)
}
