package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/manjotbrar/katha/internal/config"
	"github.com/manjotbrar/katha/internal/logger"
)

// fakeYTDLP answers --get-id with a fixed id and otherwise creates the file
// its -o template points at, with the given extension.
func fakeYTDLP(t *testing.T, id, ext string) config.Tool {
	t.Helper()
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--get-id\" ]; then echo '" + id + "'; exit 0; fi\n" +
		"prev=\"\"\n" +
		"tmpl=\"\"\n" +
		"for a; do\n" +
		"  if [ \"$prev\" = \"-o\" ]; then tmpl=$a; fi\n" +
		"  prev=$a\n" +
		"done\n" +
		"dir=$(dirname \"$tmpl\")\n" +
		"printf 'audio' > \"$dir/yt_audio_" + id + "." + ext + "\"\n"
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake yt-dlp: %v", err)
	}
	return config.Tool{Name: "yt-dlp", Argv: []string{path}}
}

func TestDownloadAudio_DeterministicPath(t *testing.T) {
	d := NewDownloader(fakeYTDLP(t, "dQw4w9WgXcQ", "mp3"), config.Tool{}, logger.Nop())
	outDir := filepath.Join(t.TempDir(), "downloads")

	path, err := d.DownloadAudio(context.Background(), "https://youtu.be/dQw4w9WgXcQ", outDir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	want := filepath.Join(outDir, "yt_audio_dQw4w9WgXcQ.mp3")
	if path != want {
		t.Fatalf("got %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
}

func TestDownloadAudio_GlobRecovery(t *testing.T) {
	// The stub produces an m4a instead of the expected mp3; the downloader
	// should still find it.
	d := NewDownloader(fakeYTDLP(t, "abc123", "m4a"), config.Tool{}, logger.Nop())
	outDir := t.TempDir()

	path, err := d.DownloadAudio(context.Background(), "https://youtu.be/abc123", outDir)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !strings.HasSuffix(path, "yt_audio_abc123.m4a") {
		t.Fatalf("expected glob recovery to return the m4a, got %s", path)
	}
}

func TestDownloadAudio_ToolMissing(t *testing.T) {
	d := NewDownloader(config.Tool{Name: "yt-dlp"}, config.Tool{}, logger.Nop())
	_, err := d.DownloadAudio(context.Background(), "https://youtu.be/x", t.TempDir())
	if err == nil {
		t.Fatalf("expected an error when yt-dlp is unavailable")
	}
	if !strings.Contains(err.Error(), "yt-dlp") {
		t.Fatalf("error should name the missing tool, got %v", err)
	}
}
