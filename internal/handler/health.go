package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/seedance-go/internal/middleware"
	"github.com/deppfellow/seedance-go/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports whether the relay can forward requests. The
// generation API is not called; only local wiring is checked.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	healthy := true

	if h.server.Client != nil {
		checks["generation_client"] = map[string]any{
			"status":   "healthy",
			"upstream": h.server.Config.BaseHost,
		}
	} else {
		checks["generation_client"] = map[string]any{
			"status": "unhealthy",
			"error":  "generation client not configured",
		}
		healthy = false
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Env,
		"checks":      checks,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
