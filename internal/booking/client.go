package booking

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dharmasatrya/triotrip/internal/ratelimit"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

const ServiceName = "booking"

var (
	ErrMissingOfferID = errors.New("offerId is required")
	ErrMissingOrderID = errors.New("orderId is required")
)

type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Limiter    *ratelimit.UpstreamLimiter
}

// Client forwards offer and order calls to the order API. Upstream answers
// are returned as-is, including non-2xx ones.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *ratelimit.UpstreamLimiter
}

// Response is an upstream answer relayed to the caller.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: cfg.HTTPClient,
		limiter:    cfg.Limiter,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

func (c *Client) GetOffer(ctx context.Context, offerID string) (*Response, error) {
	if strings.TrimSpace(offerID) == "" {
		return nil, ErrMissingOfferID
	}
	return c.do(ctx, http.MethodGet, "/air/offers/"+url.PathEscape(offerID), nil)
}

// CreateOrder posts the order body untouched.
func (c *Client) CreateOrder(ctx context.Context, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/air/orders", body)
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Response, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrMissingOrderID
	}
	return c.do(ctx, http.MethodGet, "/air/orders/"+url.PathEscape(orderID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	if !c.Configured() {
		return nil, upstream.New(ServiceName, upstream.Misconfigured,
			errors.New("BOOKING_API_URL and BOOKING_API_TOKEN must be set"))
	}
	if err := c.limiter.Wait(ctx, ServiceName); err != nil {
		return nil, upstream.New(ServiceName, upstream.RateLimited, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.New(ServiceName, upstream.Failed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.New(ServiceName, upstream.Failed, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &Response{Status: resp.StatusCode, ContentType: contentType, Body: data}, nil
}
