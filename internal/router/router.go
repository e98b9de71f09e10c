// Package router assembles the relay's echo instance: middleware chain,
// error handler and routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/seedance-go/internal/handler"
	"github.com/deppfellow/seedance-go/internal/middleware"
	"github.com/deppfellow/seedance-go/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	tasks := router.Group(TasksPath, middlewares.RateLimit.Limit())
	registerTaskRoutes(tasks, h)

	return router
}
