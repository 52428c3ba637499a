package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/manjotbrar/katha/internal/logger"
)

// scriptedSplitter materializes one segment file per scripted text and
// returns them in order.
type scriptedSplitter struct {
	texts []string
	err   error

	gotInput   string
	gotSeconds int
}

func (s *scriptedSplitter) Split(_ context.Context, input, outDir string, seconds int) ([]string, error) {
	s.gotInput = input
	s.gotSeconds = seconds
	if s.err != nil {
		return nil, s.err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i := range s.texts {
		p := filepath.Join(outDir, fmt.Sprintf("chunk_%03d.mp3", i))
		if err := os.WriteFile(p, []byte("audio"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// newChunkedPipeline wires a pipeline whose fake client answers each segment
// with the scripted text for its index. failOn aborts that segment with an
// error; -1 disables it.
func newChunkedPipeline(t *testing.T, texts []string, failOn int) (*Pipeline, *scriptedSplitter, *fakeClient) {
	t.Helper()
	split := &scriptedSplitter{texts: texts}
	fc := &fakeClient{
		translateFn: func(req openai.AudioRequest) (openai.AudioResponse, error) {
			var idx int
			if _, err := fmt.Sscanf(filepath.Base(req.FilePath), "chunk_%d.mp3", &idx); err != nil {
				return openai.AudioResponse{}, fmt.Errorf("unexpected segment path %s", req.FilePath)
			}
			if idx == failOn {
				return openai.AudioResponse{}, errors.New("segment outage")
			}
			return audioResponse(t, fmt.Sprintf(`{"text":%q,"language":"en","segments":[]}`, texts[idx])), nil
		},
	}
	svc := newTestService(fc)
	return NewPipeline(svc, split, 600, logger.Nop()), split, fc
}

func TestTranscribeLarge_JoinsSegmentsInOrder(t *testing.T) {
	tmpRoot := t.TempDir()
	t.Setenv("TMPDIR", tmpRoot)

	p, split, _ := newChunkedPipeline(t, []string{"first part.", "second part.", "third part."}, -1)

	res, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: true})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if split.gotInput != "long.mp3" || split.gotSeconds != 600 {
		t.Fatalf("splitter called with %q/%d", split.gotInput, split.gotSeconds)
	}
	want := "first part.\n\nsecond part.\n\nthird part."
	if res.Text != want {
		t.Fatalf("combined text:\ngot  %q\nwant %q", res.Text, want)
	}
	if res.Language != "en" {
		t.Fatalf("expected language en, got %q", res.Language)
	}
	if len(res.Segments) != 0 {
		t.Fatalf("chunked result must not carry per-segment alignment: %+v", res.Segments)
	}
}

func TestTranscribeLarge_SkipsEmptyFragments(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	p, _, _ := newChunkedPipeline(t, []string{"spoken.", "", "more speech."}, -1)

	res, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: true})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if want := "spoken.\n\nmore speech."; res.Text != want {
		t.Fatalf("got %q, want %q", res.Text, want)
	}
}

func TestTranscribeLarge_CleansUpSegments(t *testing.T) {
	tmpRoot := t.TempDir()
	t.Setenv("TMPDIR", tmpRoot)

	p, _, _ := newChunkedPipeline(t, []string{"a", "b"}, -1)
	if _, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: true}); err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	entries, err := os.ReadDir(tmpRoot)
	if err != nil {
		t.Fatalf("read temp root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("segment dir should be removed after the job, found %v", entries)
	}
}

func TestTranscribeLarge_MidSegmentFailureDiscardsPartialText(t *testing.T) {
	tmpRoot := t.TempDir()
	t.Setenv("TMPDIR", tmpRoot)

	p, _, _ := newChunkedPipeline(t, []string{"one", "two", "three"}, 1)

	res, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: true})
	if err == nil {
		t.Fatalf("expected the segment failure to propagate")
	}
	if res.Text != "" {
		t.Fatalf("no partial text may be returned, got %q", res.Text)
	}

	// Leftover segment files are swept by the deferred directory removal.
	entries, readErr := os.ReadDir(tmpRoot)
	if readErr != nil {
		t.Fatalf("read temp root: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("temp dir should be removed even on failure, found %v", entries)
	}
}

func TestTranscribeLarge_SplitterErrorPropagates(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	split := &scriptedSplitter{err: errors.New("ffmpeg exploded")}
	p := NewPipeline(newTestService(&fakeClient{}), split, 600, logger.Nop())

	_, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: true})
	if err == nil || !errors.Is(err, split.err) {
		t.Fatalf("expected splitter error, got %v", err)
	}
}

func TestTranscribeLarge_LanguageFollowsTranslateFlag(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	split := &scriptedSplitter{texts: []string{"ਪਾਠ"}}
	fc := &fakeClient{
		transcribeFn: func(req openai.AudioRequest) (openai.AudioResponse, error) {
			return audioResponse(t, `{"text":"ਪਾਠ","language":"pa","segments":[]}`), nil
		},
	}
	p := NewPipeline(newTestService(fc), split, 600, logger.Nop())

	res, err := p.TranscribeLarge(context.Background(), "long.mp3", Options{TranslateToEnglish: false})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if res.Language != "pa" {
		t.Fatalf("untranslated chunked result should keep the source language, got %q", res.Language)
	}
}
