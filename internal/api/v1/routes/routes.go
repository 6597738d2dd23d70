package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whisper-skill/internal/api/middleware"
	"whisper-skill/internal/api/v1/handlers"
)

// Register wires all HTTP routes onto the router.
func Register(router *gin.Engine, h *handlers.TranscriptionHandler) {
	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Metrics())
	{
		v1.GET("/history", h.History)
		v1.POST("/transcriptions", h.Create)
	}
}
