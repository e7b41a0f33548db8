package ai

import "strings"

// Chains maps each operation kind to its ordered candidates, fastest or most
// preferred first.
type Chains map[OperationKind][]Candidate

// DefaultChains returns the stock OpenRouter candidate lists.
func DefaultChains() Chains {
	return Chains{
		KindSummarize: candidates("openai/gpt-3.5-turbo", "google/gemini-flash-1.5"),
		KindTag:       candidates("openai/gpt-3.5-turbo", "google/gemini-flash-1.5"),
		KindSuggest:   candidates("openai/gpt-3.5-turbo", "google/gemini-flash-1.5"),
		KindSolve: candidates(
			"google/gemini-flash-1.5",
			"google/gemini-2.0-flash-exp",
			"openai/gpt-3.5-turbo",
			"google/gemini-pro",
		),
		KindAnalyzeImage: candidates(
			"openai/gpt-4o",
			"google/gemini-2.0-flash-exp",
			"openai/gpt-4o-mini",
			"google/gemini-pro-vision",
			"google/gemini-flash-1.5",
			"anthropic/claude-3.5-sonnet",
			"anthropic/claude-3-opus",
		),
		KindGenerateNews: candidates(
			"google/gemini-2.0-flash-exp",
			"google/gemini-flash-1.5",
			"openai/gpt-4o-mini",
			"openai/gpt-3.5-turbo",
			"google/gemini-pro",
		),
	}
}

// For returns a copy of the chain for kind.
func (c Chains) For(kind OperationKind) []Candidate {
	src := c[kind]
	out := make([]Candidate, len(src))
	copy(out, src)
	return out
}

// With returns a copy of c where kind uses models instead. Blank entries are
// skipped; an empty list leaves the chain untouched.
func (c Chains) With(kind OperationKind, models ...string) Chains {
	out := make(Chains, len(c))
	for k, v := range c {
		out[k] = append([]Candidate(nil), v...)
	}
	if list := candidates(models...); len(list) > 0 {
		out[kind] = list
	}
	return out
}

// ParseModelList splits a comma-separated model list.
func ParseModelList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func candidates(models ...string) []Candidate {
	var out []Candidate
	for _, m := range models {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, Candidate{Model: m})
		}
	}
	return out
}
