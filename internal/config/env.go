package config

import (
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/local/contextblog/internal/ai"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
    Level        string
    Pretty       bool
    File         string
    MaxSizeMB    int
    MaxBackups   int
    MaxAgeDays   int
    Compress     bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
    Send          bool
    APIKey        string
    OrgID         string
    Dataset       string
    FlushInterval time.Duration
}

// AIConfig defines the provider endpoint, credential, timeouts and chains.
type AIConfig struct {
    APIKey             string
    BaseURL            string
    Referer            string
    Title              string
    ConnectTimeout     time.Duration
    ReadTimeout        time.Duration
    ImageReadTimeout   time.Duration
    Chains             ai.Chains
}

// CacheConfig defines the Redis-backed result cache and blog index.
type CacheConfig struct {
    RedisURL string
    Enabled  bool
    TTL      time.Duration
}

// HTTPConfig defines the inbound API.
type HTTPConfig struct {
    Port             string
    NewsDefaultCount int
    NewsMaxCount     int
}

// Config is the top-level configuration.
type Config struct {
    Logging LoggingConfig
    Axiom   AxiomConfig
    AI      AIConfig
    Cache   CacheConfig
    HTTP    HTTPConfig
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
    cfg := Config{}

    // Logging defaults
    cfg.Logging = LoggingConfig{
        Level:      getEnv("LOG_LEVEL", "info"),
        Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
        File:       getEnv("LOG_FILE", "logs/contextblog.log"),
        MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
        MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
        MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
        Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
    }

    // Axiom defaults
    baseDataset := getEnv("AXIOM_DATASET", "dev")
    cfg.Axiom = AxiomConfig{
        Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
        APIKey:        getEnv("AXIOM_API_KEY", ""),
        OrgID:         getEnv("AXIOM_ORG_ID", ""),
        Dataset:       baseDataset + "_contextblog",
        FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
    }

    // AI defaults; OPENAI_API_KEY is honoured for older deployments
    cfg.AI = AIConfig{
        APIKey:         getEnv("OPENROUTER_API_KEY", os.Getenv("OPENAI_API_KEY")),
        BaseURL:        getEnv("AI_BASE_URL", ai.DefaultBaseURL),
        Referer:        getEnv("AI_REFERER", "http://localhost:3000"),
        Title:          getEnv("AI_TITLE", "ContextBlog"),
        ConnectTimeout: parseDuration(getEnv("AI_CONNECT_TIMEOUT", "5s"), ai.DefaultConnectTimeout),
        ReadTimeout:    parseDuration(getEnv("AI_READ_TIMEOUT", "15s"), ai.DefaultReadTimeout),
    }
    cfg.AI.ImageReadTimeout = parseDuration(getEnv("AI_IMAGE_READ_TIMEOUT", ""), cfg.AI.ReadTimeout)
    cfg.AI.Chains = chainsFromEnv(ai.DefaultChains())

    // Cache defaults
    cfg.Cache = CacheConfig{
        RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
        Enabled:  parseBool(getEnv("CACHE_ENABLED", "true")),
        TTL:      parseDuration(getEnv("CACHE_TTL", "24h"), 24*time.Hour),
    }

    // HTTP defaults
    cfg.HTTP = HTTPConfig{
        Port:             getEnv("PORT", "8080"),
        NewsDefaultCount: parseInt(getEnv("NEWS_DEFAULT_COUNT", "4"), 4),
        NewsMaxCount:     parseInt(getEnv("NEWS_MAX_COUNT", "8"), 8),
    }
    if cfg.HTTP.NewsDefaultCount <= 0 { cfg.HTTP.NewsDefaultCount = 4 }
    if cfg.HTTP.NewsMaxCount < cfg.HTTP.NewsDefaultCount { cfg.HTTP.NewsMaxCount = cfg.HTTP.NewsDefaultCount }

    return cfg
}

// chainsFromEnv applies AI_<KIND>_MODELS overrides, e.g.
// AI_SOLVE_MODELS="openai/gpt-4o-mini,google/gemini-flash-1.5".
func chainsFromEnv(base ai.Chains) ai.Chains {
    out := base
    for _, kind := range ai.Kinds {
        if v := os.Getenv("AI_" + kind.EnvName() + "_MODELS"); v != "" {
            out = out.With(kind, ai.ParseModelList(v)...)
        }
    }
    return out
}

// Helpers
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func parseInt(s string, def int) int {
    if s == "" { return def }
    if n, err := strconv.Atoi(s); err == nil { return n }
    return def
}

func parseBool(s string) bool {
    v := strings.ToLower(strings.TrimSpace(s))
    return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
    if s == "" { return def }
    if d, err := time.ParseDuration(s); err == nil { return d }
    return def
}

func devDefaultPretty() string {
    env := strings.ToLower(os.Getenv("ENVIRONMENT"))
    if env == "dev" || env == "development" || env == "local" { return "true" }
    return "false"
}
