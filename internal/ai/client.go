package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "https://openrouter.ai/api/v1"
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 15 * time.Second

	// completions for our prompts stay well under this
	maxReplyBytes = 4 << 20
)

type ClientOptions struct {
	BaseURL        string
	APIKey         string
	Referer        string
	Title          string
	ConnectTimeout time.Duration
	// HTTPClient overrides the dialer-bounded default client (tests).
	HTTPClient *http.Client
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	http           *http.Client
	baseURL        string
	apiKey         string
	referer        string
	title          string
	connectTimeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		dialer := &net.Dialer{Timeout: opts.ConnectTimeout, KeepAlive: 30 * time.Second}
		hc = &http.Client{Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   opts.ConnectTimeout,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: time.Second,
		}}
	}
	return &Client{
		http:           hc,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		apiKey:         opts.APIKey,
		referer:        opts.Referer,
		title:          opts.Title,
		connectTimeout: opts.ConnectTimeout,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Complete sends one non-streaming completion request. The whole exchange is
// bounded by connect+read timeout; any received status is returned as a Reply
// with a nil error, whatever the code.
func (c *Client) Complete(ctx context.Context, req ChatRequest, readTimeout time.Duration) (Reply, error) {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, c.connectTimeout+readTimeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return Reply{}, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(cctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Reply{StatusCode: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}
	return Reply{StatusCode: resp.StatusCode, Body: data}, nil
}
