package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// OperationKind selects the prompt shape, the candidate chain and the
// post-processing applied to a completion.
type OperationKind string

const (
	KindSummarize    OperationKind = "summarize"
	KindTag          OperationKind = "tag"
	KindSuggest      OperationKind = "suggest"
	KindSolve        OperationKind = "solve"
	KindAnalyzeImage OperationKind = "analyze_image"
	KindGenerateNews OperationKind = "generate_news"
)

// Kinds lists every operation kind in a stable order.
var Kinds = []OperationKind{KindSummarize, KindTag, KindSuggest, KindSolve, KindAnalyzeImage, KindGenerateNews}

// Valid reports whether k is one of the known kinds.
func (k OperationKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// EnvName returns the upper-case form used in environment keys (AI_SOLVE_MODELS).
func (k OperationKind) EnvName() string { return strings.ToUpper(string(k)) }

// Candidate is one model attempted within a fallback chain.
type Candidate struct {
	Model string
}

// ContentPart is one element of a multimodal message body.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Message is a chat message. Parts, when set, replace Text and the content is
// sent as an array.
type Message struct {
	Role  string
	Text  string
	Parts []ContentPart
}

func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.Parts) > 0 {
		return json.Marshal(struct {
			Role    string        `json:"role"`
			Content []ContentPart `json:"content"`
		}{m.Role, m.Parts})
	}
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{m.Role, m.Text})
}

// ChatRequest is the provider wire body for POST /chat/completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// Prompt is a model-independent request; For binds it to one candidate.
type Prompt struct {
	Kind        OperationKind
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

func (p Prompt) For(model string) ChatRequest {
	return ChatRequest{
		Model:       model,
		Messages:    p.Messages,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		Stream:      false,
	}
}

// Reply is the raw outcome of one completed HTTP exchange.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Transport performs exactly one bounded call. A non-nil error means no
// status was received (dial, DNS, timeout, body read).
type Transport interface {
	Complete(ctx context.Context, req ChatRequest, readTimeout time.Duration) (Reply, error)
}

// NewsItem is one generated or canned news entry.
type NewsItem struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Thumbnail string `json:"thumbnail"`
}
