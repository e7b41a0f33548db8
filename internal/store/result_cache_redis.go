package store

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "time"

    redis "github.com/redis/go-redis/v9"
)

// CachedResult is an AI answer kept so identical requests skip the provider.
type CachedResult struct {
    Value    string
    Model    string
    StoredAt time.Time
}

type ResultCache struct {
    client *redis.Client
    ttl    time.Duration
    keyNS  string
}

func NewResultCache(c *redis.Client, ttl time.Duration) *ResultCache {
    return &ResultCache{client: c, ttl: ttl, keyNS: "ai:result"}
}

// CacheKey derives a stable key from the operation kind and its inputs.
// Inputs are length-prefixed so ("ab","c") and ("a","bc") differ.
func CacheKey(kind string, inputs ...string) string {
    h := sha256.New()
    h.Write([]byte(kind))
    for _, in := range inputs {
        fmt.Fprintf(h, "\x00%d:", len(in))
        h.Write([]byte(in))
    }
    return hex.EncodeToString(h.Sum(nil))
}

func (s *ResultCache) key(kind, hash string) string { return fmt.Sprintf("%s:%s:%s", s.keyNS, kind, hash) }

func (s *ResultCache) Get(ctx context.Context, kind, hash string) (CachedResult, bool, error) {
    res, err := s.client.HGetAll(ctx, s.key(kind, hash)).Result()
    if err != nil { return CachedResult{}, false, err }
    if len(res) == 0 { return CachedResult{}, false, nil }
    out := CachedResult{Value: res["value"], Model: res["model"]}
    if v := res["stored_at"]; v != "" {
        if t, err := time.Parse(time.RFC3339Nano, v); err == nil { out.StoredAt = t }
    }
    return out, true, nil
}

func (s *ResultCache) Put(ctx context.Context, kind, hash string, r CachedResult) error {
    if r.StoredAt.IsZero() { r.StoredAt = time.Now().UTC() }
    key := s.key(kind, hash)
    pipe := s.client.TxPipeline()
    pipe.HSet(ctx, key, map[string]interface{}{
        "value":     r.Value,
        "model":     r.Model,
        "stored_at": r.StoredAt.Format(time.RFC3339Nano),
    })
    if s.ttl > 0 {
        pipe.Expire(ctx, key, s.ttl)
    }
    _, err := pipe.Exec(ctx)
    return err
}
