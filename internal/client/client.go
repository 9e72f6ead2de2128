package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const xsrfCookieName = "XSRF-TOKEN"

// Client is the single point where remote calls leave the process.
// It attaches the base URL, the static access token header and the
// session cookies to every request; nothing else in the repository
// talks to the network directly.
type Client struct {
	baseUrl     string
	accessToken string
	httpClient  *http.Client
	log         *logrus.Logger
}

func New(baseUrl, accessToken string, log *logrus.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseUrl:     strings.TrimRight(baseUrl, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		log: log,
	}, nil
}

// EnsureCSRF performs the pre-flight GET that makes the server drop
// the XSRF cookie into the jar. Call it before state-changing auth
// requests; subsequent mutating calls reflect the cookie as a header.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	if _, err := c.Do(ctx, http.MethodGet, "/sanctum/csrf-cookie", nil); err != nil {
		return fmt.Errorf("csrf pre-flight: %w", err)
	}
	return nil
}

func (c *Client) xsrfToken() string {
	u, err := url.Parse(c.baseUrl)
	if err != nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		if ck.Name != xsrfCookieName {
			continue
		}
		if v, err := url.QueryUnescape(ck.Value); err == nil {
			return v
		}
		return ck.Value
	}
	return ""
}

// Do issues one request and returns the raw response body. Failures
// come back as *APIError carrying the server-supplied message when
// there is one. A 401 is returned untouched for the caller to decide
// what to do; a 403 is additionally logged.
func (c *Client) Do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("X-Access-Token", c.accessToken)
	}
	if method != http.MethodGet && method != http.MethodHead {
		if tok := c.xsrfToken(); tok != "" {
			req.Header.Set("X-XSRF-TOKEN", tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusForbidden {
			c.log.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
			}).Warn("forbidden by remote API")
		}
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, payload)
}

func (c *Client) Put(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, payload)
}

func (c *Client) Patch(ctx context.Context, path string, payload any) ([]byte, error) {
	return c.Do(ctx, http.MethodPatch, path, payload)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
