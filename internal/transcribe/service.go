// Package transcribe drives speech-to-text with a two-tier translation
// strategy: ask the speech service for an English translation directly, and
// fall back to raw transcription plus a separate machine-translation pass
// when that fails. Long audio goes through the chunked pipeline.
package transcribe

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/manjotbrar/katha/internal/language"
	"github.com/manjotbrar/katha/internal/logger"
)

const translateSystemPrompt = "You translate Punjabi (Gurmukhi) speech " +
	"transcriptions into clear, natural English. Keep the meaning faithful, " +
	"concise, and readable."

// Service submits audio to the speech service and text to the chat service.
type Service struct {
	client       SpeechClient
	whisperModel string
	chatModel    string
	sourceLang   string
	log          *logger.Logger
}

func NewService(client SpeechClient, whisperModel, chatModel, sourceLang string, log *logger.Logger) *Service {
	return &Service{
		client:       client,
		whisperModel: whisperModel,
		chatModel:    chatModel,
		sourceLang:   sourceLang,
		log:          log.With("component", "transcribe"),
	}
}

// Transcribe is the primary strategy. In translate mode the service's
// translation endpoint is used, auto-detecting the source language; if the
// returned text still does not look like English, a second-pass text
// translation replaces it. A failure of that second pass is logged and
// swallowed: the untranslated text is better than no result.
func (s *Service) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	req := openai.AudioRequest{
		Model:    s.whisperModel,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	var (
		resp openai.AudioResponse
		err  error
	)
	if opts.TranslateToEnglish {
		resp, err = s.client.CreateTranslation(ctx, req)
	} else {
		resp, err = s.client.CreateTranscription(ctx, req)
	}
	if err != nil {
		return Result{}, fmt.Errorf("speech service: %w", err)
	}

	res := Result{
		Text:     resp.Text,
		Language: resp.Language,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}
	if res.Language == "" {
		res.Language = s.sourceLang
	}
	for _, seg := range resp.Segments {
		res.Segments = append(res.Segments, Segment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	if opts.TranslateToEnglish && language.LikelyNotEnglish(res.Text) {
		translated, terr := s.TranslateText(ctx, res.Text)
		if terr != nil {
			s.log.Warn("second-pass translation failed, keeping original text",
				"path", audioPath, "error", terr)
		} else {
			res.Text = translated
		}
	}
	return res, nil
}

// TranslateText runs the secondary translator on already-transcribed text.
// Returns an empty string when the service produces no usable content.
func (s *Service) TranslateText(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translateSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				Content: "Translate the following into English. Output only " +
					"the translation, no preface.\n\n" + text,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("translation service: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TranscribeFallback is the second strategy tier: transcribe without
// translation, then machine-translate the raw text. Callers invoke it only
// after Transcribe returned a hard error. An empty raw transcript short-
// circuits without touching the translator.
func (s *Service) TranscribeFallback(ctx context.Context, audioPath string) (Result, error) {
	raw, err := s.Transcribe(ctx, audioPath, Options{TranslateToEnglish: false})
	if err != nil {
		return Result{}, err
	}
	if raw.Text == "" {
		return Result{Text: "", Language: s.sourceLang, Segments: []Segment{}}, nil
	}
	translated, err := s.TranslateText(ctx, raw.Text)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: translated, Language: "en", Segments: raw.Segments}, nil
}
