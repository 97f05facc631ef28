// Package espn reads fantasy football league data from the ESPN API.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/moodmeter/internal/config"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

// Client performs authenticated GET requests against the league API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	Config     config.ESPN
}

// NewClient creates a client for the league described by cfg.
func NewClient(cfg config.ESPN, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		Config:     cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches endpoint and decodes the JSON body into result. Comma
// separated param values are sent as repeated keys.
func (c *Client) Get(ctx context.Context, endpoint string, params, headers map[string]string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		for _, v := range strings.Split(value, ",") {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	c.setCookies(req)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Public leagues need no cookies.
func (c *Client) setCookies(req *http.Request) {
	if c.Config.SWID == "" && c.Config.S2 == "" {
		return
	}
	req.Header.Set("Cookie", fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.S2))
}
