package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dharmasatrya/triotrip/internal/ratelimit"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

const (
	ServiceName    = "ai"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Completer is a text-in/text-out language model.
type Completer interface {
	Complete(ctx context.Context, prompt, system string) (string, error)
}

type Config struct {
	Enabled    bool
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Limiter    *ratelimit.UpstreamLimiter
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	enabled    bool
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *ratelimit.UpstreamLimiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		enabled:    cfg.Enabled,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
		limiter:    cfg.Limiter,
	}
}

// Status reports "ok", "disabled" or "misconfigured" for health checks.
func (c *Client) Status() string {
	switch {
	case !c.enabled:
		return upstream.Disabled.String()
	case c.apiKey == "":
		return upstream.Misconfigured.String()
	default:
		return "ok"
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, prompt, system string) (string, error) {
	if !c.enabled {
		return "", upstream.New(ServiceName, upstream.Disabled, errors.New("AI features are disabled"))
	}
	if c.apiKey == "" {
		return "", upstream.New(ServiceName, upstream.Misconfigured, errors.New("AI_API_KEY is not set"))
	}
	if err := c.limiter.Wait(ctx, ServiceName); err != nil {
		return "", upstream.New(ServiceName, upstream.RateLimited, err)
	}

	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.4,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", upstream.New(ServiceName, upstream.Failed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		uerr := upstream.FromStatus(ServiceName, resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			uerr.Kind = upstream.Misconfigured
		}
		return "", uerr
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", upstream.New(ServiceName, upstream.Failed, fmt.Errorf("failed to parse completion: %w", err))
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", upstream.New(ServiceName, upstream.Failed, errors.New("empty completion"))
	}

	return out.Choices[0].Message.Content, nil
}
