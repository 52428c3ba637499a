package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manjotbrar/katha/internal/config"
	"github.com/manjotbrar/katha/internal/logger"
)

// Downloader resolves a video URL to a local mp3 via yt-dlp.
type Downloader struct {
	ytdlp  config.Tool
	ffmpeg config.Tool
	log    *logger.Logger
}

func NewDownloader(ytdlp, ffmpeg config.Tool, log *logger.Logger) *Downloader {
	return &Downloader{ytdlp: ytdlp, ffmpeg: ffmpeg, log: log.With("component", "downloader")}
}

// DownloadAudio extracts the best-quality audio track of url as mp3 into
// outDir and returns the downloaded file's path. yt-dlp names the file after
// the video id; a second --get-id invocation recovers that id so the final
// path can be computed deterministically.
func (d *Downloader) DownloadAudio(ctx context.Context, url, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir %s: %w", outDir, err)
	}

	template := filepath.Join(outDir, "yt_audio_%(id)s.%(ext)s")
	args := []string{
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"-o", template,
		"--no-playlist",
	}
	if d.ffmpeg.Found() {
		args = append(args, "--ffmpeg-location", d.ffmpeg.Argv[0])
	}
	args = append(args, url)

	if _, err := runTool(ctx, d.log, d.ytdlp, args...); err != nil {
		return "", err
	}

	id, err := d.videoID(ctx, url)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, "yt_audio_"+id+".mp3")
	if _, err := os.Stat(path); err == nil {
		d.log.Info("audio downloaded", "url", url, "path", path)
		return path, nil
	}

	// The extension prediction can miss when yt-dlp skips the re-mux; fall
	// back to whatever the template produced.
	matches, globErr := filepath.Glob(filepath.Join(outDir, "yt_audio_"+id+".*"))
	if globErr == nil && len(matches) > 0 {
		d.log.Warn("expected mp3 not found, using downloaded file as-is", "path", matches[0])
		return matches[0], nil
	}
	return "", fmt.Errorf("download finished but no output file found for video id %s in %s", id, outDir)
}

// videoID asks yt-dlp for the stable identifier of url.
func (d *Downloader) videoID(ctx context.Context, url string) (string, error) {
	out, err := runTool(ctx, d.log, d.ytdlp, "--get-id", url)
	if err != nil {
		return "", fmt.Errorf("get video id: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("could not extract video id from url %s", url)
	}
	return id, nil
}
