package content

import (
	"sort"
	"time"

	"github.com/local/contextblog/internal/store"
)

const (
	TrendingWindow = 7 * 24 * time.Hour
	trendingLimit  = 10
	relatedLimit   = 5
)

// TagCount is one entry of the trending tag list.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// rankTrending keeps blogs created inside the window before now and orders
// them by likes+comments, descending. Ties keep the newer blog first.
func rankTrending(blogs []store.BlogSnapshot, now time.Time) []store.BlogSnapshot {
	cutoff := now.Add(-TrendingWindow)
	var out []store.BlogSnapshot
	for _, b := range blogs {
		if b.CreatedAt.After(cutoff) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := engagement(out[i]), engagement(out[j])
		if ei != ej {
			return ei > ej
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > trendingLimit {
		out = out[:trendingLimit]
	}
	return out
}

func engagement(b store.BlogSnapshot) int { return b.Likes + b.Comments }

// rankTags counts normalized tag usage across blogs. Equal counts sort by
// tag name.
func rankTags(blogs []store.BlogSnapshot) []TagCount {
	counts := map[string]int{}
	for _, b := range blogs {
		for _, t := range b.Tags {
			if t = normalizeTag(t); t != "" {
				counts[t]++
			}
		}
	}
	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > trendingLimit {
		out = out[:trendingLimit]
	}
	return out
}

// relatedIDs picks up to five blogs other than selfID: those sharing a tag
// with tags come first, then the rest, each group newest first.
func relatedIDs(blogs []store.BlogSnapshot, selfID string, tags []string) []string {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[normalizeTag(t)] = struct{}{}
	}

	candidates := make([]store.BlogSnapshot, 0, len(blogs))
	for _, b := range blogs {
		if b.ID == "" || b.ID == selfID {
			continue
		}
		candidates = append(candidates, b)
	}
	shares := func(b store.BlogSnapshot) bool {
		for _, t := range b.Tags {
			if _, ok := want[normalizeTag(t)]; ok {
				return true
			}
		}
		return false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := shares(candidates[i]), shares(candidates[j])
		if si != sj {
			return si
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	ids := make([]string, 0, relatedLimit)
	for _, b := range candidates {
		ids = append(ids, b.ID)
		if len(ids) == relatedLimit {
			break
		}
	}
	return ids
}
