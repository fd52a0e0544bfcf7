package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"voxlate/internal/domain"
)

const maxAudioSize = 50 * 1024 * 1024

// Player fetches a clip by locator, decodes it and hands it to an Output.
type Player struct {
	httpClient *http.Client
	output     Output
	logger     *slog.Logger
}

func NewPlayer(output Output, logger *slog.Logger) *Player {
	return NewPlayerWithHTTP(output, &http.Client{}, logger)
}

func NewPlayerWithHTTP(output Output, httpClient *http.Client, logger *slog.Logger) *Player {
	return &Player{
		httpClient: httpClient,
		output:     output,
		logger:     logger,
	}
}

func (p *Player) Play(ctx context.Context, audio domain.Locator) error {
	data, err := p.load(ctx, audio)
	if err != nil {
		return err
	}

	pcm, err := DecodeWAV(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", audio.Base(), err)
	}

	p.logger.Debug("playing audio", "audio", audio, "samples", len(pcm.Samples), "sampleRate", pcm.SampleRate)

	if err := p.output.Play(ctx, pcm); err != nil {
		return fmt.Errorf("playing: %w", err)
	}
	return nil
}

func (p *Player) load(ctx context.Context, audio domain.Locator) ([]byte, error) {
	if !audio.IsRemote() {
		data, err := os.ReadFile(audio.Path())
		if err != nil {
			return nil, fmt.Errorf("reading audio: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audio.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching audio: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioSize))
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	return data, nil
}
