package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/local/contextblog/internal/ai"
	"github.com/local/contextblog/internal/content"
	"github.com/local/contextblog/internal/dispatcher"
	"github.com/local/contextblog/internal/statuscheck"
	"github.com/local/contextblog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	newsCount int
}

func (f *fakeAssistant) Solve(_ context.Context, q string) dispatcher.Result[string] {
	return dispatcher.Result[string]{Value: "answer to " + q, Provenance: dispatcher.ProvenanceAPI, Model: "google/gemini-flash-1.5", Attempts: 1}
}

func (f *fakeAssistant) AnalyzeImage(context.Context, string) dispatcher.Result[string] {
	return dispatcher.Result[string]{Value: dispatcher.MsgUnconfigured, Provenance: dispatcher.ProvenanceError}
}

func (f *fakeAssistant) GenerateNews(_ context.Context, count int) dispatcher.Result[[]ai.NewsItem] {
	f.newsCount = count
	return dispatcher.Result[[]ai.NewsItem]{Value: dispatcher.LocalNews(count), Provenance: dispatcher.ProvenanceLocal}
}

type fakeContent struct {
	trendingErr error
}

func (f *fakeContent) Analyze(_ context.Context, selfID, title, body string) content.Analysis {
	return content.Analysis{Summary: "s", Tags: []string{"go"}, RelatedBlogs: []string{}}
}

func (f *fakeContent) Suggest(_ context.Context, text, blogContext string) string {
	return "next words"
}

func (f *fakeContent) Trending(context.Context) ([]store.BlogSnapshot, error) {
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return []store.BlogSnapshot{{ID: "b1", Title: "Hello"}}, nil
}

func (f *fakeContent) TrendingTags(context.Context) ([]content.TagCount, error) {
	return []content.TagCount{{Tag: "go", Count: 3}}, nil
}

type fakeBlogs struct {
	got []store.BlogSnapshot
}

func (f *fakeBlogs) Upsert(_ context.Context, b store.BlogSnapshot) error {
	f.got = append(f.got, b)
	return nil
}

type fakeStatus struct{}

func (fakeStatus) Summary(context.Context) statuscheck.Summary {
	return statuscheck.Summary{Redis: statuscheck.Status{OK: true, Message: "Connected"}}
}

type harness struct {
	mux     *http.ServeMux
	gateway *fakeAssistant
	content *fakeContent
	blogs   *fakeBlogs
}

func newHarness(withBlogs bool) *harness {
	h := &harness{gateway: &fakeAssistant{}, content: &fakeContent{}, blogs: &fakeBlogs{}}
	deps := Dependencies{Gateway: h.gateway, Content: h.content, Status: fakeStatus{}, NewsMaxCount: 8}
	if withBlogs {
		deps.Blogs = h.blogs
	}
	h.mux = http.NewServeMux()
	New(deps).RegisterRoutes(h.mux)
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.mux.ServeHTTP(rec, req)
	return rec
}

func TestSolve(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodPost, "/api/ai/solve", `{"question":"2+2?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp solveResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "answer to 2+2?", resp.Answer)
	assert.Equal(t, "google/gemini-flash-1.5", resp.Model)
}

func TestAnalyzeImageReturnsMessageAsContent(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodPost, "/api/ai/analyze-image", `{"imageBase64":"data:image/png;base64,AAAA"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp imageResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dispatcher.MsgUnconfigured, resp.Summary)
	assert.Empty(t, resp.Model)
}

func TestBadRequests(t *testing.T) {
	h := newHarness(true)
	tests := []struct {
		name, path, body string
	}{
		{"blank question", "/api/ai/solve", `{"question":"  "}`},
		{"missing image", "/api/ai/analyze-image", `{}`},
		{"malformed json", "/api/ai/solve", `{"question":`},
		{"analyze without content", "/api/blogs/analyze", `{"title":"t"}`},
		{"suggest without text", "/api/blogs/suggest", `{"context":"c"}`},
		{"snapshot without id", "/internal/blogs", `{"title":"t"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodGet, "/api/ai/solve", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))

	rec = h.do(http.MethodPost, "/api/blogs/news", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeAndSuggest(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodPost, "/api/blogs/analyze", `{"id":"b1","title":"Go","content":"Body"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"s","tags":["go"],"relatedBlogs":[]}`, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/blogs/suggest", `{"text":"Once upon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestion":"next words"}`, rec.Body.String())
}

func TestNewsCount(t *testing.T) {
	tests := []struct {
		query string
		code  int
		want  int
	}{
		{"", http.StatusOK, dispatcher.DefaultNewsCount},
		{"?count=2", http.StatusOK, 2},
		{"?count=0", http.StatusOK, dispatcher.DefaultNewsCount},
		{"?count=50", http.StatusOK, 8},
		{"?count=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h := newHarness(false)
			rec := h.do(http.MethodGet, "/api/blogs/news"+tt.query, "")
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				return
			}
			assert.Equal(t, tt.want, h.gateway.newsCount)
			var items []ai.NewsItem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
			assert.Len(t, items, tt.want)
		})
	}
}

func TestTrending(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodGet, "/api/blogs/trending-tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"tag":"go","count":3}]`, rec.Body.String())

	h.content.trendingErr = errors.New("redis down")
	rec = h.do(http.MethodGet, "/api/blogs/trending", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBlogSnapshot(t *testing.T) {
	h := newHarness(true)
	rec := h.do(http.MethodPost, "/internal/blogs", `{"id":"b1","title":"Go","tags":["go"],"likes":3}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, h.blogs.got, 1)
	assert.Equal(t, 3, h.blogs.got[0].Likes)
	assert.False(t, h.blogs.got[0].CreatedAt.IsZero())

	h = newHarness(false)
	rec = h.do(http.MethodPost, "/internal/blogs", `{"id":"b1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndStatus(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = h.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var s statuscheck.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.True(t, s.Redis.OK)
}

func TestValidationNamesJSONField(t *testing.T) {
	h := newHarness(false)
	rec := h.do(http.MethodPost, "/api/ai/analyze-image", `{"imageBase64":" "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "imageBase64 is required")
}
