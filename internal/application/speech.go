package application

import (
	"context"
	"fmt"

	"voxlate/internal/domain"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) (domain.Locator, error)
}

// Transcriber returns recognition candidates for a recorded clip, best first.
type Transcriber interface {
	Transcribe(ctx context.Context, clip domain.Locator, hint domain.Language) ([]string, error)
}

// NoopTranscriber is used when no transcription backend is configured.
type NoopTranscriber struct{}

func (n *NoopTranscriber) Transcribe(_ context.Context, _ domain.Locator, _ domain.Language) ([]string, error) {
	return nil, fmt.Errorf("transcription not configured: set services.transcribe.base_url to enable it")
}
