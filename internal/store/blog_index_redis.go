package store

import (
    "context"
    "encoding/json"
    "fmt"
    "strconv"
    "time"

    redis "github.com/redis/go-redis/v9"
)

// BlogSnapshot is the engagement view of a blog pushed by the CRUD service.
type BlogSnapshot struct {
    ID        string    `json:"id" validate:"notblank"`
    Title     string    `json:"title"`
    Tags      []string  `json:"tags"`
    Likes     int       `json:"likes"`
    Comments  int       `json:"comments"`
    CreatedAt time.Time `json:"createdAt"`
}

// BlogIndex keeps one hash per blog plus a sorted set ordered by creation time.
type BlogIndex struct {
    client *redis.Client
    keyNS  string
}

func NewBlogIndex(c *redis.Client) *BlogIndex {
    return &BlogIndex{client: c, keyNS: "blog"}
}

func (s *BlogIndex) key(id string) string { return fmt.Sprintf("%s:%s", s.keyNS, id) }
func (s *BlogIndex) indexKey() string     { return s.keyNS + ":index" }

func (s *BlogIndex) Upsert(ctx context.Context, b BlogSnapshot) error {
    if b.ID == "" { return fmt.Errorf("blog snapshot without id") }
    tags, err := json.Marshal(b.Tags)
    if err != nil { return err }
    pipe := s.client.TxPipeline()
    pipe.HSet(ctx, s.key(b.ID), map[string]interface{}{
        "id":         b.ID,
        "title":      b.Title,
        "tags":       string(tags),
        "likes":      b.Likes,
        "comments":   b.Comments,
        "created_at": b.CreatedAt.UTC().Format(time.RFC3339Nano),
    })
    pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(b.CreatedAt.Unix()), Member: b.ID})
    _, err = pipe.Exec(ctx)
    return err
}

func (s *BlogIndex) Delete(ctx context.Context, id string) error {
    pipe := s.client.TxPipeline()
    pipe.Del(ctx, s.key(id))
    pipe.ZRem(ctx, s.indexKey(), id)
    _, err := pipe.Exec(ctx)
    return err
}

// Recent returns blogs created at or after since, newest first. A zero since
// returns every indexed blog.
func (s *BlogIndex) Recent(ctx context.Context, since time.Time) ([]BlogSnapshot, error) {
    lo := "-inf"
    if !since.IsZero() { lo = strconv.FormatInt(since.Unix(), 10) }
    ids, err := s.client.ZRevRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{Min: lo, Max: "+inf"}).Result()
    if err != nil { return nil, err }
    if len(ids) == 0 { return nil, nil }

    pipe := s.client.Pipeline()
    cmds := make([]*redis.MapStringStringCmd, len(ids))
    for i, id := range ids {
        cmds[i] = pipe.HGetAll(ctx, s.key(id))
    }
    if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil { return nil, err }

    out := make([]BlogSnapshot, 0, len(ids))
    for _, cmd := range cmds {
        res, err := cmd.Result()
        if err != nil || len(res) == 0 { continue }
        out = append(out, decodeSnapshot(res))
    }
    return out, nil
}

func decodeSnapshot(res map[string]string) BlogSnapshot {
    b := BlogSnapshot{ID: res["id"], Title: res["title"]}
    // ignore parse errors; default 0
    b.Likes, _ = strconv.Atoi(res["likes"])
    b.Comments, _ = strconv.Atoi(res["comments"])
    if v := res["tags"]; v != "" {
        _ = json.Unmarshal([]byte(v), &b.Tags)
    }
    if v := res["created_at"]; v != "" {
        if t, err := time.Parse(time.RFC3339Nano, v); err == nil { b.CreatedAt = t }
    }
    return b
}
