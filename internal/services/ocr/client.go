package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapid/internal/textutil"
	"snapid/internal/titleid"
)

const (
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps a hosted OCR service that reads text regions out of
// screenshots.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the OCR client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP timeout on the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs an OCR service client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("ocr base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type extractRequest struct {
	Image string `json:"image"`
}

type extractResponse struct {
	Tokens []struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"tokens"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractTokens runs OCR over an image and returns the recognized text
// regions in reading order. Token text is Unicode-normalized at this boundary
// so downstream filtering sees one canonical form.
func (c *Client) ExtractTokens(ctx context.Context, image []byte) ([]titleid.Token, error) {
	if len(image) == 0 {
		return nil, errors.New("ocr extract: image required")
	}
	endpoint, err := url.JoinPath(c.baseURL, "/v1/ocr")
	if err != nil {
		return nil, fmt.Errorf("ocr extract: build url: %w", err)
	}
	encoded, err := json.Marshal(extractRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("ocr extract: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("ocr extract: request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr extract: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ocr extract: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("ocr extract: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload extractResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("ocr extract: decode response: %w", err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("ocr extract: api error: %s", strings.TrimSpace(payload.Error.Message))
	}

	tokens := make([]titleid.Token, 0, len(payload.Tokens))
	for _, token := range payload.Tokens {
		text := textutil.NormalizeToken(token.Text)
		if text == "" {
			continue
		}
		confidence := token.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
		tokens = append(tokens, titleid.Token{Text: text, Confidence: confidence})
	}
	return tokens, nil
}
