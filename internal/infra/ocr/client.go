package ocr

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

	"voxlate/internal/domain"
	"voxlate/internal/infra"
)

const DefaultURL = "https://api.ocr.space/parse/image"

// Client extracts text from images and PDF documents with an OCR.space
// compatible endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return NewClientWithURL(apiKey, DefaultURL)
}

func NewClientWithURL(apiKey, url string) *Client {
	return &Client{
		httpClient: &http.Client{},
		url:        url,
		apiKey:     apiKey,
	}
}

type parsedResult struct {
	ParsedText string `json:"ParsedText"`
}

type parseResponse struct {
	ParsedResults         []parsedResult `json:"ParsedResults"`
	IsErroredOnProcessing bool           `json:"IsErroredOnProcessing"`
	ErrorMessage          any            `json:"ErrorMessage"`
}

// Extract returns the first parse result's text. A response without parse
// results, or with only whitespace, yields domain.ErrNoText.
func (c *Client) Extract(ctx context.Context, file domain.Locator, kind domain.DocumentKind) (string, error) {
	data, err := os.ReadFile(file.Path())
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err = writer.WriteField("apikey", c.apiKey); err != nil {
		return "", fmt.Errorf("writing apikey field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Base()))
	header.Set("Content-Type", contentType(file.Base(), kind))

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err = part.Write(data); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("closing writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckStatus(domain.CapabilityExtract, resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var result parseResponse
	if err = json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.IsErroredOnProcessing {
		return "", &domain.ServiceError{
			Capability: domain.CapabilityExtract,
			Status:     "errored",
			Message:    errorText(result.ErrorMessage),
		}
	}

	if len(result.ParsedResults) == 0 {
		return "", domain.ErrNoText
	}

	text := result.ParsedResults[0].ParsedText
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoText
	}

	return text, nil
}

// errorText flattens ErrorMessage, which the service sends either as a
// string or as a list of strings.
func errorText(v any) string {
	switch msg := v.(type) {
	case string:
		return msg
	case []any:
		parts := make([]string, 0, len(msg))
		for _, m := range msg {
			if s, ok := m.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

func contentType(name string, kind domain.DocumentKind) string {
	if kind == domain.DocumentKindDocument {
		return "application/pdf"
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".jpg" || ext == ".jpeg" || ext == "" {
		return "image/jpeg"
	}
	if ct := mime.TypeByExtension(ext); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/jpeg"
}
