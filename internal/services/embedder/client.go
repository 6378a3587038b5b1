package embedder

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

	"snapid/internal/visualid"
)

const (
	defaultModel       = "clip-vit-base-patch32"
	defaultDimensions  = 512
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps a hosted CLIP-style inference service that converts images
// into embedding vectors.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
	httpClient *http.Client
}

// Option customizes the embedding client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithModel selects the embedding model.
func WithModel(model string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			c.model = trimmed
		}
	}
}

// WithDimensions sets the expected vector dimensionality.
func WithDimensions(dimensions int) Option {
	return func(c *Client) {
		if dimensions > 0 {
			c.dimensions = dimensions
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

// NewClient constructs an embedding service client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("embedder base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      defaultModel,
		dimensions: defaultDimensions,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var _ visualid.ImageEmbedder = (*Client)(nil)

type embedRequest struct {
	Model string `json:"model"`
	Image string `json:"image"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
	Model     string    `json:"model"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// EmbedImage converts an image into a unit-length vector. The service's raw
// output is validated against the configured dimensionality and normalized
// here so every vector entering the index is comparable by dot product.
func (c *Client) EmbedImage(ctx context.Context, image []byte) (visualid.Vector, error) {
	if len(image) == 0 {
		return nil, errors.New("embed image: image required")
	}
	endpoint, err := url.JoinPath(c.baseURL, "/v1/embeddings/image")
	if err != nil {
		return nil, fmt.Errorf("embed image: build url: %w", err)
	}
	encoded, err := json.Marshal(embedRequest{
		Model: c.model,
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("embed image: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("embed image: request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed image: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("embed image: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("embed image: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload embedResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("embed image: decode response: %w", err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("embed image: api error: %s", strings.TrimSpace(payload.Error.Message))
	}
	if len(payload.Embedding) != c.dimensions {
		return nil, fmt.Errorf("embed image: got %d dimensions, expected %d", len(payload.Embedding), c.dimensions)
	}

	vector, err := visualid.Normalize(payload.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embed image: %w", err)
	}
	return vector, nil
}
