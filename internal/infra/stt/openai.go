package stt

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"voxlate/internal/domain"
	"voxlate/internal/infra"
)

// OpenAIClient transcribes clips with Whisper.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClientWithURL targets baseURL when set and the public API
// otherwise. A zero timeout leaves the request bounded only by the caller.
func NewOpenAIClientWithURL(apiKey, model, baseURL string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, clip domain.Locator, hint domain.Language) ([]string, error) {
	waitCtx, cancel := infra.WithWaitBound(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateTranscription(waitCtx, openai.AudioRequest{
		Model:    c.model,
		FilePath: clip.Path(),
		Language: hint.Code,
	})
	if err != nil {
		return nil, infra.WrapTimeout(ctx, waitCtx, err, "whisper transcription")
	}

	if resp.Text == "" {
		return nil, nil
	}
	return []string{resp.Text}, nil
}
