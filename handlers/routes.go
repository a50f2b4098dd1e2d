package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/padraicbc/playcall/web"
)

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	// Screens
	e.GET("/", h.Index)
	e.POST("/select", h.Select)
	e.POST("/predictions", h.SubmitPrediction)
	e.POST("/quarter", h.AdvanceQuarter)
	e.POST("/view", h.ToggleView)

	// JSON
	api := e.Group("/api")
	api.GET("/state", h.State)
	api.GET("/options", h.Options)
	api.POST("/selection", h.APISelection)
	api.POST("/predictions", h.APISubmit)
	api.GET("/history", h.History)

	e.GET("/ws", h.Notifications)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(web.Static())))))
}
