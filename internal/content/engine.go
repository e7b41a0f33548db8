package content

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/local/contextblog/internal/ai"
	"github.com/local/contextblog/internal/dispatcher"
	mpkg "github.com/local/contextblog/internal/metrics"
	"github.com/local/contextblog/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Assistant is the part of the AI gateway the engine drives.
type Assistant interface {
	Summarize(ctx context.Context, content string) dispatcher.Result[string]
	Tags(ctx context.Context, title, content string) dispatcher.Result[[]string]
	Suggest(ctx context.Context, text, blogContext string) dispatcher.Result[string]
}

type ResultCache interface {
	Get(ctx context.Context, kind, hash string) (store.CachedResult, bool, error)
	Put(ctx context.Context, kind, hash string, r store.CachedResult) error
}

type BlogSource interface {
	Recent(ctx context.Context, since time.Time) ([]store.BlogSnapshot, error)
}

type Options struct {
	Assistant Assistant
	// Cache and Blogs are optional; without them every call reaches the
	// gateway and trending lists are empty.
	Cache ResultCache
	Blogs BlogSource
	Now   func() time.Time
}

// Engine composes AI results with the blog engagement index.
type Engine struct {
	ai    Assistant
	cache ResultCache
	blogs BlogSource
	now   func() time.Time
}

func NewEngine(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{ai: opts.Assistant, cache: opts.Cache, blogs: opts.Blogs, now: opts.Now}
}

// Analysis is the response of Analyze.
type Analysis struct {
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
	RelatedBlogs []string `json:"relatedBlogs"`
}

// Analyze summarizes and tags a post and lists related blogs. selfID may be
// empty for drafts that are not indexed yet.
func (e *Engine) Analyze(ctx context.Context, selfID, title, body string) Analysis {
	var a Analysis
	// Both branches degrade locally and never fail.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Summary = e.summary(gCtx, body)
		return nil
	})
	g.Go(func() error {
		a.Tags = e.tags(gCtx, title, body)
		return nil
	})
	_ = g.Wait()

	a.RelatedBlogs = []string{}
	if e.blogs != nil {
		blogs, err := e.blogs.Recent(ctx, time.Time{})
		if err != nil {
			log.Warn().Err(err).Msg("blog index unavailable, no related blogs")
		} else {
			a.RelatedBlogs = relatedIDs(blogs, selfID, a.Tags)
		}
	}
	return a
}

func (e *Engine) Suggest(ctx context.Context, text, blogContext string) string {
	return e.ai.Suggest(ctx, text, blogContext).Value
}

// Trending returns up to ten blogs from the last seven days by engagement.
func (e *Engine) Trending(ctx context.Context) ([]store.BlogSnapshot, error) {
	if e.blogs == nil {
		return []store.BlogSnapshot{}, nil
	}
	now := e.now()
	blogs, err := e.blogs.Recent(ctx, now.Add(-TrendingWindow))
	if err != nil {
		return nil, err
	}
	out := rankTrending(blogs, now)
	if out == nil {
		out = []store.BlogSnapshot{}
	}
	return out, nil
}

// TrendingTags returns the ten most used tags across all indexed blogs.
func (e *Engine) TrendingTags(ctx context.Context) ([]TagCount, error) {
	if e.blogs == nil {
		return []TagCount{}, nil
	}
	blogs, err := e.blogs.Recent(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	mpkg.SetBlogIndexSize(len(blogs))
	return rankTags(blogs), nil
}

func (e *Engine) summary(ctx context.Context, body string) string {
	kind := string(ai.KindSummarize)
	hash := store.CacheKey(kind, body)
	if hit, ok := e.lookup(ctx, kind, hash); ok {
		return hit.Value
	}
	res := e.ai.Summarize(ctx, body)
	if res.Provenance == dispatcher.ProvenanceAPI {
		e.remember(ctx, kind, hash, res.Value, res.Model)
	}
	return res.Value
}

func (e *Engine) tags(ctx context.Context, title, body string) []string {
	kind := string(ai.KindTag)
	hash := store.CacheKey(kind, title, body)
	if hit, ok := e.lookup(ctx, kind, hash); ok {
		var tags []string
		if err := json.Unmarshal([]byte(hit.Value), &tags); err == nil {
			return tags
		}
	}
	res := e.ai.Tags(ctx, title, body)
	tags := make([]string, 0, len(res.Value))
	for _, t := range res.Value {
		if t = normalizeTag(t); t != "" {
			tags = append(tags, t)
		}
	}
	if res.Provenance == dispatcher.ProvenanceAPI {
		if b, err := json.Marshal(tags); err == nil {
			e.remember(ctx, kind, hash, string(b), res.Model)
		}
	}
	return tags
}

func (e *Engine) lookup(ctx context.Context, kind, hash string) (store.CachedResult, bool) {
	if e.cache == nil {
		return store.CachedResult{}, false
	}
	hit, ok, err := e.cache.Get(ctx, kind, hash)
	switch {
	case err != nil:
		mpkg.CacheError(kind)
		log.Warn().Err(err).Str("kind", kind).Msg("result cache read failed")
		return store.CachedResult{}, false
	case !ok:
		mpkg.CacheMiss(kind)
		return store.CachedResult{}, false
	}
	mpkg.CacheHit(kind)
	log.Debug().Str("kind", kind).Str("model", hit.Model).Msg("result cache hit")
	return hit, true
}

func (e *Engine) remember(ctx context.Context, kind, hash, value, model string) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Put(ctx, kind, hash, store.CachedResult{Value: value, Model: model}); err != nil {
		mpkg.CacheError(kind)
		log.Warn().Err(err).Str("kind", kind).Msg("result cache write failed")
		return
	}
	mpkg.CacheStore(kind)
}

// normalizeTag lowercases a tag and drops a leading '#'.
func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
}
