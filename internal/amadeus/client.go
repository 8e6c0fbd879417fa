package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharmasatrya/triotrip/internal/ratelimit"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

const (
	ServiceName    = "amadeus"
	TestBaseURL    = "https://test.api.amadeus.com"
	ProductionURL  = "https://api.amadeus.com"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	HTTPClient   *http.Client
	Limiter      *ratelimit.UpstreamLimiter
}

type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	limiter      *ratelimit.UpstreamLimiter
	tokens       *tokenCache
}

// BaseURLForEnv maps AMADEUS_ENV to an API host; anything but "production"
// uses the free test environment.
func BaseURLForEnv(env string) string {
	if strings.EqualFold(env, "production") || strings.EqualFold(env, "prod") {
		return ProductionURL
	}
	return TestBaseURL
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = TestBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   cfg.HTTPClient,
		limiter:      cfg.Limiter,
		tokens:       newTokenCache(),
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.clientID != "" && c.clientSecret != ""
}

// Token returns a cached access token, exchanging client credentials when the
// cached one is missing or about to expire.
func (c *Client) Token(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", upstream.New(ServiceName, upstream.Misconfigured,
			errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set"))
	}
	return c.tokens.get(ctx, c.fetchToken)
}

func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, upstream.New(ServiceName, upstream.Failed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		uerr := upstream.FromStatus(ServiceName, resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
			uerr.Kind = upstream.Misconfigured
		}
		return "", 0, uerr
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", 0, upstream.New(ServiceName, upstream.Failed, fmt.Errorf("failed to parse token response: %w", err))
	}
	if result.AccessToken == "" {
		return "", 0, upstream.New(ServiceName, upstream.Failed, errors.New("token response without access_token"))
	}

	return result.AccessToken, time.Duration(result.ExpiresIn) * time.Second, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, ServiceName); err != nil {
		return nil, upstream.New(ServiceName, upstream.RateLimited, err)
	}

	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.New(ServiceName, upstream.Failed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.invalidate()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstream.FromStatus(ServiceName, resp.StatusCode, body)
	}
	return body, nil
}
