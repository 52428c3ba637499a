package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"github.com/manjotbrar/katha/internal/config"
	"github.com/manjotbrar/katha/internal/handlers"
	"github.com/manjotbrar/katha/internal/logger"
	"github.com/manjotbrar/katha/internal/media"
	"github.com/manjotbrar/katha/internal/server"
	"github.com/manjotbrar/katha/internal/transcribe"
)

func main() {
	config.LoadDefaultEnv()
	cfg := config.FromEnv()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if strings.HasPrefix(strings.ToLower(cfg.LogMode), "prod") {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; transcription requests will fail")
	}

	// Resolved once at startup; /health reports what was found and a missing
	// tool surfaces as an acquisition error on first use.
	ytdlp, err := config.ResolveYTDLP()
	if err != nil {
		log.Warn("yt-dlp could not be resolved", "error", err)
	}
	ffmpeg, err := config.ResolveFFmpeg()
	if err != nil {
		log.Warn("ffmpeg could not be resolved", "error", err)
	}
	log.Info("external tools", "yt_dlp", ytdlp.String(), "ffmpeg", ffmpeg.String())

	client := openai.NewClient(cfg.OpenAIAPIKey)
	svc := transcribe.NewService(client, cfg.WhisperModel, cfg.ChatModel, cfg.SourceLang, log)
	splitter := media.NewSplitter(ffmpeg, log)
	pipeline := transcribe.NewPipeline(svc, splitter, cfg.ChunkSeconds, log)
	downloader := media.NewDownloader(ytdlp, ffmpeg, log)

	router := server.NewRouter(server.RouterConfig{
		Health:     handlers.NewHealthHandler(cfg.Port, ytdlp, ffmpeg),
		Transcribe: handlers.NewTranscribeHandler(pipeline, downloader, cfg.UploadDir, log),
		PublicDir:  cfg.PublicDir,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
