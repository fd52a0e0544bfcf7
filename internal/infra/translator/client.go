package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"voxlate/internal/domain"
	"voxlate/internal/infra"
)

// Client calls the translation service. It imposes no timeout of its own.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(baseURL, path string) *Client {
	return NewClientWithHTTP(baseURL, path, &http.Client{})
}

func NewClientWithHTTP(baseURL, path string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimSuffix(baseURL, "/") + path,
	}
}

type request struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type response struct {
	Translation string `json:"translation"`
}

func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	body, err := json.Marshal(request{Text: text, From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(domain.CapabilityTranslate, resp); err != nil {
		return "", err
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.Translation == "" {
		return "", fmt.Errorf("translation missing from response: %w", domain.ErrEmptyResult)
	}

	return result.Translation, nil
}
