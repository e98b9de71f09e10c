package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/seedance-go/internal/handler"
)

// TasksPath mirrors the generation API so the relay is a drop-in base URL.
const TasksPath = "/api/v3/contents/generations/tasks"

func registerTaskRoutes(g *echo.Group, h *handler.Handlers) {
	g.POST("", h.Tasks.CreateTask())
	g.POST("/validate", h.Tasks.ValidateTask())
	g.GET("/:id", h.Tasks.GetTask())
	g.DELETE("/:id", h.Tasks.CancelTask())
}
