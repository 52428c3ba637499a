package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjotbrar/katha/internal/config"
)

// HealthHandler reports liveness plus which external tools were resolved,
// so operators can spot a missing yt-dlp/ffmpeg before a request fails.
type HealthHandler struct {
	port   int
	ytdlp  config.Tool
	ffmpeg config.Tool
}

func NewHealthHandler(port int, ytdlp, ffmpeg config.Tool) *HealthHandler {
	return &HealthHandler{port: port, ytdlp: ytdlp, ffmpeg: ffmpeg}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"port":   h.port,
		"yt_dlp": h.ytdlp.String(),
		"ffmpeg": h.ffmpeg.String(),
	})
}
