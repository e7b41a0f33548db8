package dispatcher

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/local/contextblog/internal/ai"
	mpkg "github.com/local/contextblog/internal/metrics"
	"github.com/rs/zerolog/log"
)

// DefaultNewsCount is used when a caller asks for zero or fewer items.
const DefaultNewsCount = 4

// Provenance records which path produced a result.
type Provenance string

const (
	ProvenanceAPI   Provenance = "api"
	ProvenanceLocal Provenance = "local_fallback"
	ProvenanceError Provenance = "error_message"
)

// Result is what the gateway hands back. Value is always usable content:
// an AI answer, a local fallback or a caller-facing apology.
type Result[T any] struct {
	Value      T
	Provenance Provenance
	// Model is the candidate that answered; empty unless Provenance is api.
	Model     string
	Attempts  int
	State     ChainState
	RequestID string
}

type Timeouts struct {
	Read      time.Duration
	ImageRead time.Duration
}

type Options struct {
	Guard     *ai.Guard
	Transport ai.Transport
	Chains    ai.Chains
	Timeouts  Timeouts
	// Now stamps the news prompt; defaults to time.Now.
	Now func() time.Time
}

// Gateway fulfils AI requests by walking a per-kind chain of candidate
// models. It holds no per-call state and is safe for concurrent use.
type Gateway struct {
	guard     *ai.Guard
	transport ai.Transport
	chains    ai.Chains
	timeouts  Timeouts
	now       func() time.Time
}

func New(opts Options) *Gateway {
	if opts.Chains == nil {
		opts.Chains = ai.DefaultChains()
	}
	if opts.Timeouts.Read <= 0 {
		opts.Timeouts.Read = ai.DefaultReadTimeout
	}
	if opts.Timeouts.ImageRead <= 0 {
		opts.Timeouts.ImageRead = opts.Timeouts.Read
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Gateway{
		guard:     opts.Guard,
		transport: opts.Transport,
		chains:    opts.Chains,
		timeouts:  opts.Timeouts,
		now:       opts.Now,
	}
}

func (g *Gateway) Configured() bool { return g.guard.IsConfigured() }

// Summarize degrades to a truncated prefix of the content.
func (g *Gateway) Summarize(ctx context.Context, content string) Result[string] {
	return degradable(ctx, g, ai.SummarizePrompt(content), ai.ParseText,
		func() string { return LocalSummary(content) })
}

// Tags degrades to keyword extraction over title and content.
func (g *Gateway) Tags(ctx context.Context, title, content string) Result[[]string] {
	return degradable(ctx, g, ai.TagPrompt(title, content), ai.ParseTags,
		func() []string { return LocalTags(title, content) })
}

// Suggest degrades to an empty suggestion.
func (g *Gateway) Suggest(ctx context.Context, text, blogContext string) Result[string] {
	return degradable(ctx, g, ai.SuggestPrompt(text, blogContext), ai.ParseText,
		func() string { return "" })
}

// GenerateNews degrades to canned items. Longer model arrays are cut to count.
func (g *Gateway) GenerateNews(ctx context.Context, count int) Result[[]ai.NewsItem] {
	if count <= 0 {
		count = DefaultNewsCount
	}
	parse := func(text string) ([]ai.NewsItem, error) { return ai.ParseNews(text, count) }
	return degradable(ctx, g, ai.NewsPrompt(count, g.now()), parse,
		func() []ai.NewsItem { return LocalNews(count) })
}

// Solve never fabricates an answer; failures come back as an apology.
func (g *Gateway) Solve(ctx context.Context, question string) Result[string] {
	return apologetic(ctx, g, ai.SolvePrompt(strings.TrimSpace(question)), g.timeouts.Read)
}

// AnalyzeImage accepts a data URL or bare base64 image.
func (g *Gateway) AnalyzeImage(ctx context.Context, imageBase64 string) Result[string] {
	img := ai.ParseImage(imageBase64)
	log.Debug().Str("format", img.Format).Int("payload_len", len(img.Data)).Msg("parsed image payload")
	return apologetic(ctx, g, ai.ImagePrompt(img), g.timeouts.ImageRead)
}

// degradable runs a chain whose failures are replaced by local content.
func degradable[T any](ctx context.Context, g *Gateway, p ai.Prompt, parse func(string) (T, error), local func() T) Result[T] {
	res := Result[T]{RequestID: uuid.NewString(), State: StateNotStarted}

	if !g.guard.IsConfigured() {
		log.Warn().Str("request_id", res.RequestID).Str("kind", string(p.Kind)).
			Msg("AI API key not configured, using local fallback")
		res.Value, res.Provenance = local(), ProvenanceLocal
		mpkg.ObserveResult(string(p.Kind), string(res.Provenance))
		return res
	}

	run := runChain(ctx, g.transport, res.RequestID, p, g.chains.For(p.Kind), g.timeouts.Read, parse)
	res.Attempts, res.State = run.attempts, run.state
	if run.state == StateSuccess {
		res.Value, res.Model, res.Provenance = run.value, run.model, ProvenanceAPI
	} else {
		log.Warn().Str("request_id", res.RequestID).Str("kind", string(p.Kind)).Str("state", string(run.state)).
			Msg("using local fallback")
		res.Value, res.Provenance = local(), ProvenanceLocal
	}
	mpkg.ObserveResult(string(p.Kind), string(res.Provenance))
	return res
}

// apologetic runs a chain whose failures become caller-facing messages.
func apologetic(ctx context.Context, g *Gateway, p ai.Prompt, readTimeout time.Duration) Result[string] {
	res := Result[string]{RequestID: uuid.NewString(), State: StateNotStarted}

	if !g.guard.IsConfigured() {
		log.Warn().Str("request_id", res.RequestID).Str("kind", string(p.Kind)).
			Msg("AI API key not configured, returning notice")
		res.Value, res.Provenance = MsgUnconfigured, ProvenanceError
		mpkg.ObserveResult(string(p.Kind), string(res.Provenance))
		return res
	}

	run := runChain(ctx, g.transport, res.RequestID, p, g.chains.For(p.Kind), readTimeout, ai.ParseText)
	res.Attempts, res.State = run.attempts, run.state
	switch run.state {
	case StateSuccess:
		res.Value, res.Model, res.Provenance = run.value, run.model, ProvenanceAPI
	case StateAbortedFatal:
		res.Value, res.Provenance = abortMessage(run.abort.Reason), ProvenanceError
	default:
		res.Value, res.Provenance = exhaustedMessage(p.Kind, run.lastStatus), ProvenanceError
	}
	mpkg.ObserveResult(string(p.Kind), string(res.Provenance))
	return res
}
