package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/manjotbrar/katha/internal/logger"
)

// Splitter produces ordered bounded-duration segment files for one input.
type Splitter interface {
	Split(ctx context.Context, input, outDir string, seconds int) ([]string, error)
}

// Pipeline runs the chunked transcription flow for long audio: split into
// fixed-duration segments, transcribe each sequentially with the primary
// strategy, and concatenate the texts. Segments are processed one at a time
// to bound concurrent speech-service usage and keep ordering trivial.
type Pipeline struct {
	*Service
	splitter     Splitter
	chunkSeconds int
	log          *logger.Logger
}

func NewPipeline(svc *Service, splitter Splitter, chunkSeconds int, log *logger.Logger) *Pipeline {
	return &Pipeline{
		Service:      svc,
		splitter:     splitter,
		chunkSeconds: chunkSeconds,
		log:          log.With("component", "pipeline"),
	}
}

// TranscribeLarge transcribes audioPath segment by segment. Non-empty
// fragment texts are joined by one blank line, in segment order. Each
// segment file is removed right after use and the per-job directory is
// removed at the end, both best-effort. An error on any segment aborts the
// job: partial text is discarded, and the deferred directory removal sweeps
// up the unprocessed segment files.
func (p *Pipeline) TranscribeLarge(ctx context.Context, audioPath string, opts Options) (Result, error) {
	// Unique per job so concurrent requests never share a directory.
	tmpDir := filepath.Join(os.TempDir(), "katha_chunks_"+uuid.NewString())
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			p.log.Warn("could not remove segment dir", "dir", tmpDir, "error", err)
		}
	}()

	chunks, err := p.splitter.Split(ctx, audioPath, tmpDir, p.chunkSeconds)
	if err != nil {
		return Result{}, err
	}

	var combined strings.Builder
	for i, chunk := range chunks {
		part, err := p.Transcribe(ctx, chunk, opts)
		if err != nil {
			return Result{}, fmt.Errorf("segment %d: %w", i, err)
		}
		if part.Text != "" {
			if combined.Len() > 0 {
				combined.WriteString("\n\n")
			}
			combined.WriteString(part.Text)
		}
		if err := os.Remove(chunk); err != nil {
			p.log.Warn("could not remove segment file", "path", chunk, "error", err)
		}
	}

	lang := p.sourceLang
	if opts.TranslateToEnglish {
		lang = "en"
	}
	// Per-segment time alignment is dropped here: stream-copy segmentation
	// snaps to keyframes, so rebased global timestamps would be wrong.
	return Result{Text: combined.String(), Language: lang, Segments: []Segment{}}, nil
}
