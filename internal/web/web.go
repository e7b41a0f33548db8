package web

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "reflect"
    "strconv"
    "strings"
    "time"

    "github.com/local/contextblog/internal/ai"
    "github.com/local/contextblog/internal/content"
    "github.com/local/contextblog/internal/dispatcher"
    "github.com/local/contextblog/internal/metrics"
    "github.com/local/contextblog/internal/statuscheck"
    "github.com/local/contextblog/internal/store"
    "github.com/go-playground/validator/v10"
    "github.com/go-playground/validator/v10/non-standard/validators"
    "github.com/rs/zerolog/log"
)

// image payloads arrive inline as base64
const maxBodyBytes = 20 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
    v := validator.New()
    _ = v.RegisterValidation("notblank", validators.NotBlank)
    // report json names in errors
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "" || name == "-" { return f.Name }
        return name
    })
    return v
}

type Assistant interface {
    Solve(ctx context.Context, question string) dispatcher.Result[string]
    AnalyzeImage(ctx context.Context, imageBase64 string) dispatcher.Result[string]
    GenerateNews(ctx context.Context, count int) dispatcher.Result[[]ai.NewsItem]
}

type Content interface {
    Analyze(ctx context.Context, selfID, title, body string) content.Analysis
    Suggest(ctx context.Context, text, blogContext string) string
    Trending(ctx context.Context) ([]store.BlogSnapshot, error)
    TrendingTags(ctx context.Context) ([]content.TagCount, error)
}

type BlogWriter interface {
    Upsert(ctx context.Context, b store.BlogSnapshot) error
}

type StatusReporter interface {
    Summary(ctx context.Context) statuscheck.Summary
}

type Dependencies struct {
    Gateway Assistant
    Content Content
    // Blogs and Status are optional.
    Blogs  BlogWriter
    Status StatusReporter

    NewsDefaultCount int
    NewsMaxCount     int
}

type Web struct {
    deps Dependencies
}

func New(deps Dependencies) *Web {
    if deps.NewsDefaultCount <= 0 { deps.NewsDefaultCount = dispatcher.DefaultNewsCount }
    if deps.NewsMaxCount < deps.NewsDefaultCount { deps.NewsMaxCount = deps.NewsDefaultCount }
    return &Web{deps: deps}
}

func (w *Web) RegisterRoutes(mux *http.ServeMux) {
    mux.HandleFunc("/health", func(wr http.ResponseWriter, r *http.Request){ wr.WriteHeader(http.StatusOK); _,_ = wr.Write([]byte("ok")) })
    mux.HandleFunc("/status", w.handleStatus)
    mux.Handle("/metrics", metrics.Handler())

    mux.HandleFunc("/api/ai/solve", w.post(w.handleSolve))
    mux.HandleFunc("/api/ai/analyze-image", w.post(w.handleAnalyzeImage))

    mux.HandleFunc("/api/blogs/analyze", w.post(w.handleAnalyze))
    mux.HandleFunc("/api/blogs/suggest", w.post(w.handleSuggest))
    mux.HandleFunc("/api/blogs/news", w.get(w.handleNews))
    mux.HandleFunc("/api/blogs/trending", w.get(w.handleTrending))
    mux.HandleFunc("/api/blogs/trending-tags", w.get(w.handleTrendingTags))

    mux.HandleFunc("/internal/blogs", w.post(w.handleBlogSnapshot))
}

type solveReq struct {
    Question string `json:"question" validate:"notblank"`
}

type solveResp struct {
    Answer string `json:"answer"`
    Model  string `json:"model"`
}

func (w *Web) handleSolve(wr http.ResponseWriter, r *http.Request) {
    var req solveReq
    if !bind(wr, r, &req) { return }

    res := w.deps.Gateway.Solve(r.Context(), req.Question)
    logResult("solve", res.RequestID, res.Provenance, res.Model, res.Attempts)
    writeJSON(wr, http.StatusOK, solveResp{Answer: res.Value, Model: res.Model})
}

type imageReq struct {
    ImageBase64 string `json:"imageBase64" validate:"notblank"`
}

type imageResp struct {
    Summary string `json:"summary"`
    Model   string `json:"model"`
}

func (w *Web) handleAnalyzeImage(wr http.ResponseWriter, r *http.Request) {
    var req imageReq
    if !bind(wr, r, &req) { return }

    res := w.deps.Gateway.AnalyzeImage(r.Context(), req.ImageBase64)
    logResult("analyze_image", res.RequestID, res.Provenance, res.Model, res.Attempts)
    writeJSON(wr, http.StatusOK, imageResp{Summary: res.Value, Model: res.Model})
}

type analyzeReq struct {
    ID      string `json:"id"`
    Title   string `json:"title" validate:"notblank"`
    Content string `json:"content" validate:"notblank"`
}

func (w *Web) handleAnalyze(wr http.ResponseWriter, r *http.Request) {
    var req analyzeReq
    if !bind(wr, r, &req) { return }
    writeJSON(wr, http.StatusOK, w.deps.Content.Analyze(r.Context(), req.ID, req.Title, req.Content))
}

type suggestReq struct {
    Text    string `json:"text" validate:"notblank"`
    Context string `json:"context"`
}

func (w *Web) handleSuggest(wr http.ResponseWriter, r *http.Request) {
    var req suggestReq
    if !bind(wr, r, &req) { return }
    writeJSON(wr, http.StatusOK, map[string]string{"suggestion": w.deps.Content.Suggest(r.Context(), req.Text, req.Context)})
}

func (w *Web) handleNews(wr http.ResponseWriter, r *http.Request) {
    count := w.deps.NewsDefaultCount
    if v := r.URL.Query().Get("count"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil { http.Error(wr, "count must be an integer", http.StatusBadRequest); return }
        if n > 0 { count = n }
    }
    if count > w.deps.NewsMaxCount { count = w.deps.NewsMaxCount }

    res := w.deps.Gateway.GenerateNews(r.Context(), count)
    logResult("generate_news", res.RequestID, res.Provenance, res.Model, res.Attempts)
    items := res.Value
    if items == nil { items = []ai.NewsItem{} }
    writeJSON(wr, http.StatusOK, items)
}

func (w *Web) handleTrending(wr http.ResponseWriter, r *http.Request) {
    blogs, err := w.deps.Content.Trending(r.Context())
    if err != nil {
        log.Error().Err(err).Msg("trending blogs failed")
        http.Error(wr, "trending unavailable", http.StatusServiceUnavailable)
        return
    }
    writeJSON(wr, http.StatusOK, blogs)
}

func (w *Web) handleTrendingTags(wr http.ResponseWriter, r *http.Request) {
    tags, err := w.deps.Content.TrendingTags(r.Context())
    if err != nil {
        log.Error().Err(err).Msg("trending tags failed")
        http.Error(wr, "trending unavailable", http.StatusServiceUnavailable)
        return
    }
    writeJSON(wr, http.StatusOK, tags)
}

// handleBlogSnapshot receives engagement snapshots from the blog CRUD service.
func (w *Web) handleBlogSnapshot(wr http.ResponseWriter, r *http.Request) {
    if w.deps.Blogs == nil { http.Error(wr, "blog index disabled", http.StatusServiceUnavailable); return }
    var b store.BlogSnapshot
    if !bind(wr, r, &b) { return }
    if b.CreatedAt.IsZero() { b.CreatedAt = time.Now().UTC() }
    if err := w.deps.Blogs.Upsert(r.Context(), b); err != nil {
        log.Error().Err(err).Str("blog_id", b.ID).Msg("blog snapshot upsert failed")
        http.Error(wr, "store failed", http.StatusInternalServerError)
        return
    }
    wr.WriteHeader(http.StatusNoContent)
}

func (w *Web) handleStatus(wr http.ResponseWriter, r *http.Request) {
    if w.deps.Status == nil { http.Error(wr, "status disabled", http.StatusServiceUnavailable); return }
    writeJSON(wr, http.StatusOK, w.deps.Status.Summary(r.Context()))
}

func (w *Web) post(next http.HandlerFunc) http.HandlerFunc { return method(http.MethodPost, next) }
func (w *Web) get(next http.HandlerFunc) http.HandlerFunc  { return method(http.MethodGet, next) }

func method(m string, next http.HandlerFunc) http.HandlerFunc {
    return func(wr http.ResponseWriter, r *http.Request) {
        if r.Method != m {
            wr.Header().Set("Allow", m)
            wr.WriteHeader(http.StatusMethodNotAllowed)
            return
        }
        next(wr, r)
    }
}

func decode(wr http.ResponseWriter, r *http.Request, v any) error {
    if r.Body == nil { return errors.New("empty body") }
    dec := json.NewDecoder(http.MaxBytesReader(wr, r.Body, maxBodyBytes))
    return dec.Decode(v)
}

// bind decodes and validates the body, answering 400 itself on failure.
func bind(wr http.ResponseWriter, r *http.Request, v any) bool {
    if err := decode(wr, r, v); err != nil {
        http.Error(wr, "invalid json", http.StatusBadRequest)
        return false
    }
    if err := validate.Struct(v); err != nil {
        var verrs validator.ValidationErrors
        if errors.As(err, &verrs) && len(verrs) > 0 {
            http.Error(wr, verrs[0].Field()+" is required", http.StatusBadRequest)
            return false
        }
        http.Error(wr, err.Error(), http.StatusBadRequest)
        return false
    }
    return true
}

func writeJSON(wr http.ResponseWriter, status int, v any) {
    wr.Header().Set("Content-Type", "application/json")
    wr.WriteHeader(status)
    _ = json.NewEncoder(wr).Encode(v)
}

func logResult(kind, requestID string, p dispatcher.Provenance, model string, attempts int) {
    log.Info().
        Str("request_id", requestID).
        Str("kind", kind).
        Str("provenance", string(p)).
        Str("model", model).
        Int("attempts", attempts).
        Msg("AI request served")
}
