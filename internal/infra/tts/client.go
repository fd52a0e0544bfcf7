package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voxlate/internal/domain"
	"voxlate/internal/infra"
)

const statusSuccess = "success"

type Options struct {
	BaseURL string
	Path    string
	// SpeakerWAV is the reference voice path on the synthesis host.
	SpeakerWAV string
	// Timeout bounds how long a caller waits; zero means no bound.
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	endpoint   string
	speakerWAV string
	timeout    time.Duration
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		endpoint:   baseURL + opts.Path,
		speakerWAV: opts.SpeakerWAV,
		timeout:    opts.Timeout,
	}
}

type request struct {
	Text       string `json:"text"`
	Language   string `json:"language"`
	SpeakerWAV string `json:"speaker_wav,omitempty"`
	Timeout    int    `json:"timeout,omitempty"`
}

type response struct {
	Status   string `json:"status"`
	AudioURL string `json:"audio_url"`
	Message  string `json:"message"`
}

// Synthesize asks the service for speech and returns the playable locator:
// the service base URL followed by the relative audio path it reports.
func (c *Client) Synthesize(ctx context.Context, text, language string) (domain.Locator, error) {
	reqBody := request{
		Text:       text,
		Language:   language,
		SpeakerWAV: c.speakerWAV,
		Timeout:    timeoutSeconds(c.timeout),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	waitCtx, cancel := infra.WithWaitBound(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(waitCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", infra.WrapTimeout(ctx, waitCtx, err, "sending request")
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(domain.CapabilitySynthesize, resp); err != nil {
		return "", err
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", infra.WrapTimeout(ctx, waitCtx, err, "decoding response")
	}

	if result.Status != statusSuccess || result.AudioURL == "" {
		return "", &domain.ServiceError{
			Capability: domain.CapabilitySynthesize,
			Status:     result.Status,
			Message:    result.Message,
		}
	}

	return domain.Locator(c.baseURL + result.AudioURL), nil
}

// timeoutSeconds rounds d up to whole seconds. Zero means no bound.
func timeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
