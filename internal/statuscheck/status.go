package statuscheck

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/local/contextblog/internal/ai"
)

// RedisPinger models the minimal Redis capability we need for status checks.
type RedisPinger interface {
    Ping(ctx context.Context) error
}

// CredentialReporter exposes the advisory credential classification.
type CredentialReporter interface {
    State() ai.CredentialState
    APIKey() string
}

// Checker aggregates health checks for the gateway's external dependencies.
type Checker struct {
    redis      RedisPinger
    guard      CredentialReporter
    baseURL    string
    httpClient *http.Client
}

// Options configures the Checker.
type Options struct {
    Redis      RedisPinger
    Guard      CredentialReporter
    BaseURL    string
    HTTPClient *http.Client
}

// Status represents the readiness of a subsystem.
type Status struct {
    OK      bool   `json:"ok"`
    Message string `json:"message"`
}

// Summary bundles all subsystem statuses.
type Summary struct {
    Redis      Status `json:"redis"`
    Credential Status `json:"credential"`
    Provider   Status `json:"provider"`
}

// New creates a new Checker with the provided options.
func New(opts Options) *Checker {
    client := opts.HTTPClient
    if client == nil {
        client = &http.Client{Timeout: 5 * time.Second}
    }
    base := strings.TrimRight(opts.BaseURL, "/")
    if base == "" {
        base = ai.DefaultBaseURL
    }
    return &Checker{
        redis:      opts.Redis,
        guard:      opts.Guard,
        baseURL:    base,
        httpClient: client,
    }
}

// Summary returns the current status snapshot.
func (c *Checker) Summary(ctx context.Context) Summary {
    return Summary{
        Redis:      c.checkRedis(ctx),
        Credential: c.checkCredential(),
        Provider:   c.checkProvider(ctx),
    }
}

func (c *Checker) checkRedis(ctx context.Context) Status {
    if c.redis == nil {
        return Status{OK: false, Message: "client unavailable"}
    }
    ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
    defer cancel()
    if err := c.redis.Ping(ctx); err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    return Status{OK: true, Message: "Connected"}
}

func (c *Checker) checkCredential() Status {
    if c.guard == nil {
        return Status{OK: false, Message: "API key missing"}
    }
    switch c.guard.State() {
    case ai.CredentialMissing:
        return Status{OK: false, Message: "API key missing"}
    case ai.CredentialMalformed:
        return Status{OK: true, Message: "API key format may be incorrect"}
    default:
        return Status{OK: true, Message: "Configured"}
    }
}

// checkProvider lists models, which needs no credits and proves reachability.
func (c *Checker) checkProvider(ctx context.Context) Status {
    ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
    if err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    if c.guard != nil && c.guard.APIKey() != "" {
        req.Header.Set("Authorization", "Bearer "+c.guard.APIKey())
    }
    resp, err := c.httpClient.Do(req)
    if err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    defer resp.Body.Close()
    if resp.StatusCode >= 400 {
        return Status{OK: false, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
    }
    return Status{OK: true, Message: "Available"}
}

func trimError(err error) string {
    if err == nil {
        return ""
    }
    var netErr interface{ Timeout() bool }
    if errors.As(err, &netErr) && netErr.Timeout() {
        return "timeout"
    }
    msg := err.Error()
    if len(msg) > 120 {
        return msg[:120]
    }
    return msg
}
