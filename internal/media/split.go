package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manjotbrar/katha/internal/config"
	"github.com/manjotbrar/katha/internal/logger"
)

const (
	chunkPrefix = "chunk_"
	chunkExt    = ".mp3"
)

// Splitter cuts an audio file into fixed-duration segment files with ffmpeg.
type Splitter struct {
	ffmpeg config.Tool
	log    *logger.Logger
}

func NewSplitter(ffmpeg config.Tool, log *logger.Logger) *Splitter {
	return &Splitter{ffmpeg: ffmpeg, log: log.With("component", "splitter")}
}

// Split demuxes input into segments of at most seconds each, written to
// outDir as chunk_000.mp3, chunk_001.mp3, ... and returns the segment paths
// in temporal order. Stream copy keeps this fast, but boundaries snap to the
// nearest preceding keyframe, so segment lengths are approximate and the
// last segment is usually short.
func (s *Splitter) Split(ctx context.Context, input, outDir string, seconds int) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create segment dir %s: %w", outDir, err)
	}

	template := filepath.Join(outDir, chunkPrefix+"%03d"+chunkExt)
	args := []string{
		"-y",
		"-i", input,
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%d", seconds),
		"-c", "copy",
		template,
	}
	if _, err := runTool(ctx, s.log, s.ffmpeg, args...); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("list segment dir %s: %w", outDir, err)
	}
	var chunks []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, chunkPrefix) && strings.HasSuffix(name, chunkExt) {
			chunks = append(chunks, filepath.Join(outDir, name))
		}
	}
	// The numeric suffix is zero-padded, so lexicographic order is temporal
	// order.
	sort.Strings(chunks)

	s.log.Info("audio split into segments", "input", input, "segments", len(chunks))
	return chunks, nil
}
