package transcribe

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// SpeechClient is the slice of the OpenAI API the service depends on. The
// real client is constructed once at startup and injected, so tests can
// substitute a fake.
type SpeechClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateTranslation(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ SpeechClient = (*openai.Client)(nil)
