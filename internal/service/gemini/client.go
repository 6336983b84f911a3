package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// ErrMissingAPIKey is returned without any network call when no key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini returned no text")

type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		client: &http.Client{
			Transport: &AuthTransport{
				APIKey: cfg.APIKey,
				Base:   http.DefaultTransport,
			},
			Timeout: timeout,
		},
		config: cfg,
	}
}

// AuthTransport adds the API key header
type AuthTransport struct {
	APIKey string
	Base   http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("x-goog-api-key", t.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// GenerateText sends prompt and returns the generated free-form text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, "")
}

// GenerateJSON sends prompt with JSON response mode enabled and returns the
// raw JSON text produced by the model. The caller owns parsing it.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, "application/json")
}

func (c *Client) generate(ctx context.Context, prompt, mimeType string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}
	if mimeType != "" {
		payload.GenerationConfig = &GenerationConfig{ResponseMimeType: mimeType}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.config.APIURL, url.PathEscape(c.config.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			if apiErr.Error.Code == 0 {
				apiErr.Error.Code = resp.StatusCode
			}
			return "", &apiErr.Error
		}
		return "", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(raw))
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// IsAuthError reports whether err means the API key is missing or rejected.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch {
	case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
		return true
	case apiErr.Status == "UNAUTHENTICATED", apiErr.Status == "PERMISSION_DENIED":
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "api key")
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
