package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/client/models"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/goccy/go-json"
)

type HTTPClient struct {
	baseURL          string
	http             *http.Client
	requestTimeout   time.Duration
	summarizeTimeout time.Duration

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewHTTPClient returns a client for baseURL. requestTimeout bounds ordinary
// calls, summarizeTimeout bounds a whole summary stream.
func NewHTTPClient(baseURL string, httpClient *http.Client, requestTimeout, summarizeTimeout time.Duration) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{
		baseURL:          strings.TrimRight(baseURL, "/"),
		http:             httpClient,
		requestTimeout:   requestTimeout,
		summarizeTimeout: summarizeTimeout,
	}
}

func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = access, refresh
}

func (c *HTTPClient) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) LoggedIn() bool {
	access, _ := c.Tokens()
	return access != ""
}

// send issues one request and returns the response only for a 2xx status.
// For authed calls an expired access token triggers one refresh and retry.
func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, authed bool) (*http.Response, error) {
	resp, err := c.attempt(ctx, method, path, payload, authed)
	if authed && errors.Is(err, common.ErrTokenExpired) {
		if rerr := c.refresh(ctx); rerr != nil {
			return nil, rerr
		}
		resp, err = c.attempt(ctx, method, path, payload, authed)
	}
	return resp, err
}

func (c *HTTPClient) attempt(ctx context.Context, method, path string, payload []byte, authed bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.Tokens()
		if access == "" {
			return nil, fmt.Errorf("%w: not logged in", common.ErrorUnauthorized)
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &eb)
	return nil, mapStatus(resp.StatusCode, eb)
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refresh := c.Tokens()
	if refresh == "" {
		return fmt.Errorf("%w: session expired", common.ErrorUnauthorized)
	}

	var pair models.TokenPair
	if err := c.call(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refresh}, &pair, false); err != nil {
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// call sends in as JSON and decodes a JSON reply into out (when non-nil)
// under the request timeout.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any, authed bool) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, method, path, payload, authed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
