package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manjotbrar/katha/internal/logger"
	"github.com/manjotbrar/katha/internal/transcribe"
)

// Transcriber is the pipeline surface the handlers drive: the primary
// strategy, the raw-transcribe-then-translate fallback, and the chunked
// flow for long assets.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts transcribe.Options) (transcribe.Result, error)
	TranscribeFallback(ctx context.Context, audioPath string) (transcribe.Result, error)
	TranscribeLarge(ctx context.Context, audioPath string, opts transcribe.Options) (transcribe.Result, error)
}

// Downloader resolves a video URL to a local audio file.
type Downloader interface {
	DownloadAudio(ctx context.Context, url, outDir string) (string, error)
}

type TranscribeHandler struct {
	pipeline   Transcriber
	downloader Downloader
	uploadDir  string
	log        *logger.Logger
}

func NewTranscribeHandler(pipeline Transcriber, downloader Downloader, uploadDir string, log *logger.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		pipeline:   pipeline,
		downloader: downloader,
		uploadDir:  uploadDir,
		log:        log.With("component", "handlers"),
	}
}

// TranscribeFile handles a multipart upload (field "audio"): primary
// strategy first, the fallback tier only when the primary returns a hard
// error. The stored upload is deleted after the request either way.
func (h *TranscribeHandler) TranscribeFile(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store upload", "details": err.Error()})
		return
	}
	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store upload", "details": err.Error()})
		return
	}
	defer h.removeQuietly(dst)

	ctx := c.Request.Context()
	result, err := h.pipeline.Transcribe(ctx, dst, transcribe.Options{TranslateToEnglish: true})
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}
	h.log.Warn("primary transcription failed, trying fallback", "error", err)

	fallback, ferr := h.pipeline.TranscribeFallback(ctx, dst)
	if ferr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed", "details": ferr.Error()})
		return
	}
	c.JSON(http.StatusOK, fallback)
}

type youtubeRequest struct {
	URL string `json:"url"`
}

// TranscribeYouTube downloads the audio track for the posted URL and runs
// the chunked pipeline over it, with the same fallback policy as file
// uploads. Download failures are reported separately from transcription
// failures.
func (h *TranscribeHandler) TranscribeYouTube(c *gin.Context) {
	var req youtubeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	ctx := c.Request.Context()
	audioPath, err := h.downloader.DownloadAudio(ctx, req.URL, h.uploadDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to download audio. Ensure yt-dlp and ffmpeg are installed and on PATH.",
			"details": err.Error(),
		})
		return
	}
	defer h.removeQuietly(audioPath)

	result, err := h.pipeline.TranscribeLarge(ctx, audioPath, transcribe.Options{TranslateToEnglish: true})
	if err == nil {
		c.JSON(http.StatusOK, result)
		return
	}
	h.log.Warn("chunked transcription failed, trying fallback", "url", req.URL, "error", err)

	fallback, ferr := h.pipeline.TranscribeFallback(ctx, audioPath)
	if ferr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed", "details": ferr.Error()})
		return
	}
	c.JSON(http.StatusOK, fallback)
}

func (h *TranscribeHandler) removeQuietly(path string) {
	if err := os.Remove(path); err != nil {
		h.log.Warn("could not remove temp file", "path", path, "error", err)
	}
}
