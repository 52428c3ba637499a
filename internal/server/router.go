package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/manjotbrar/katha/internal/handlers"
)

type RouterConfig struct {
	Health     *handlers.HealthHandler
	Transcribe *handlers.TranscribeHandler

	// PublicDir, when set, is served for any unmatched route (the bundled
	// web UI).
	PublicDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", cfg.Health.Health)

	api := router.Group("/api")
	{
		api.POST("/transcribe-file", cfg.Transcribe.TranscribeFile)
		api.POST("/transcribe-youtube", cfg.Transcribe.TranscribeYouTube)
	}

	if cfg.PublicDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.PublicDir))))
	}
	return router
}
