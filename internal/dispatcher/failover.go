package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/local/contextblog/internal/ai"
	mpkg "github.com/local/contextblog/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ChainState is where a fallback chain ended up.
type ChainState string

const (
	StateNotStarted   ChainState = "not_started"
	StateTrying       ChainState = "trying"
	StateSuccess      ChainState = "success"
	StateAbortedFatal ChainState = "aborted"
	StateExhausted    ChainState = "exhausted"
)

// chainRun is the bookkeeping of one walk over a candidate chain.
type chainRun[T any] struct {
	state    ChainState
	value    T
	model    string
	attempts int
	// abort is set when state is StateAbortedFatal
	abort Outcome
	// lastStatus is the status of the last failure if it was an HTTP error, else 0
	lastStatus int
	lastErr    error
}

// runChain tries candidates strictly in order, one at a time, until one
// succeeds or the chain aborts or is exhausted. parse turns the extracted
// completion text into T; a parse error moves on to the next candidate.
func runChain[T any](
	ctx context.Context,
	t ai.Transport,
	requestID string,
	prompt ai.Prompt,
	candidates []ai.Candidate,
	readTimeout time.Duration,
	parse func(text string) (T, error),
) chainRun[T] {
	run := chainRun[T]{state: StateNotStarted}
	total := len(candidates)

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			run.state = StateAbortedFatal
			run.abort = Outcome{Verdict: VerdictAbortChain, Reason: ReasonCancelled, Err: err}
			log.Warn().
				Str("request_id", requestID).
				Str("kind", string(prompt.Kind)).
				Int("attempted", run.attempts).
				Err(err).
				Msg("caller cancelled before chain finished")
			return run
		}

		run.state = StateTrying
		run.attempts++
		log.Info().
			Str("request_id", requestID).
			Str("kind", string(prompt.Kind)).
			Str("model", c.Model).
			Int("attempt", i+1).
			Int("of", total).
			Msg("attempting AI call")

		start := time.Now()
		value, out := attempt(ctx, t, prompt, c.Model, readTimeout, parse)
		dur := time.Since(start)
		mpkg.ObserveAttempt(string(prompt.Kind), c.Model, out.Label(), dur)

		// only an HTTP error status survives into the exhausted message
		var httpErr *HTTPError
		if errors.As(out.Err, &httpErr) {
			run.lastStatus = httpErr.StatusCode
		} else if out.Verdict != VerdictSuccess {
			run.lastStatus = 0
		}

		switch out.Verdict {
		case VerdictSuccess:
			log.Info().
				Str("request_id", requestID).
				Str("kind", string(prompt.Kind)).
				Str("model", c.Model).
				Dur("duration", dur).
				Msg("AI call succeeded")
			run.state = StateSuccess
			run.value = value
			run.model = c.Model
			return run

		case VerdictAbortChain:
			log.Error().
				Str("request_id", requestID).
				Str("kind", string(prompt.Kind)).
				Str("model", c.Model).
				Int("status", out.Status).
				Str("reason", out.Reason).
				Dur("duration", dur).
				Err(out.Err).
				Msg("fatal error - not trying remaining models")
			run.state = StateAbortedFatal
			run.abort = out
			run.lastErr = out.Err
			return run

		default:
			log.Warn().
				Str("request_id", requestID).
				Str("kind", string(prompt.Kind)).
				Str("model", c.Model).
				Int("status", out.Status).
				Str("reason", out.Reason).
				Dur("duration", dur).
				Err(out.Err).
				Msg("AI call failed - trying next model")
			run.lastErr = out.Err
		}
	}

	run.state = StateExhausted
	log.Error().
		Str("request_id", requestID).
		Str("kind", string(prompt.Kind)).
		Int("attempted", run.attempts).
		Int("last_status", run.lastStatus).
		Err(run.lastErr).
		Msg("all AI models exhausted")
	return run
}

// attempt performs exactly one call against one candidate and classifies it.
func attempt[T any](
	ctx context.Context,
	t ai.Transport,
	prompt ai.Prompt,
	model string,
	readTimeout time.Duration,
	parse func(text string) (T, error),
) (T, Outcome) {
	var zero T

	reply, err := t.Complete(ctx, prompt.For(model), readTimeout)
	if err != nil {
		return zero, classifyTransport(err, model)
	}

	out := classifyStatus(reply.StatusCode, reply.Body, model)
	if out.Verdict != VerdictSuccess {
		return zero, out
	}

	text, err := ai.ExtractContent(reply.Body)
	if err != nil {
		return zero, classifyParse(err, model, true)
	}
	value, err := parse(text)
	if err != nil {
		return zero, classifyParse(err, model, errors.Is(err, ai.ErrEmptyContent))
	}
	return value, out
}
