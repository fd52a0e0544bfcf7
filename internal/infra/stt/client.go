package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxlate/internal/domain"
	"voxlate/internal/infra"
)

type Options struct {
	BaseURL string
	Path    string
	// Language, when set, is sent as the hint instead of the selected
	// language's display name.
	Language string
	Timeout  time.Duration
}

// Client uploads recorded clips to the transcription service.
type Client struct {
	httpClient *http.Client
	endpoint   string
	language   string
	timeout    time.Duration
}

func NewClient(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   strings.TrimSuffix(opts.BaseURL, "/") + opts.Path,
		language:   opts.Language,
		timeout:    opts.Timeout,
	}
}

type transcriptionResponse struct {
	Transcription []string `json:"transcription"`
}

func (c *Client) Transcribe(ctx context.Context, clip domain.Locator, hint domain.Language) ([]string, error) {
	audio, err := os.ReadFile(clip.Path())
	if err != nil {
		return nil, fmt.Errorf("reading clip: %w", err)
	}

	language := c.language
	if language == "" {
		language = hint.Name
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, clip.Base()))
	header.Set("Content-Type", contentType(clip.Base()))

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err = part.Write(audio); err != nil {
		return nil, fmt.Errorf("writing audio: %w", err)
	}

	if err = writer.WriteField("language", language); err != nil {
		return nil, fmt.Errorf("writing language field: %w", err)
	}

	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("closing writer: %w", err)
	}

	waitCtx, cancel := infra.WithWaitBound(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(waitCtx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, infra.WrapTimeout(ctx, waitCtx, err, "sending request")
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(domain.CapabilityTranscribe, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, infra.WrapTimeout(ctx, waitCtx, err, "reading response")
	}

	var result transcriptionResponse
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result.Transcription, nil
}

func contentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".m4a":
		return "audio/m4a"
	case ".wav":
		return "audio/wav"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
