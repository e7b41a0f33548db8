package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"unicode/utf8"
)

// Verdict is the fate of a single candidate attempt.
type Verdict int

const (
	VerdictSuccess Verdict = iota
	VerdictRetryNext
	VerdictAbortChain
)

func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "success"
	case VerdictRetryNext:
		return "retry_next"
	case VerdictAbortChain:
		return "abort_chain"
	}
	return "unknown"
}

// Abort reasons carried by AbortChain outcomes.
const (
	ReasonAuth        = "auth"
	ReasonUnresolved  = "dns"
	ReasonRefused     = "refused"
	ReasonCancelled   = "cancelled"
	ReasonTimeout     = "timeout"
	ReasonNoContent   = "no_content"
	ReasonUnparseable = "unparseable"
	ReasonTransport   = "transport"
)

// Outcome is the classified result of one attempt.
type Outcome struct {
	Verdict Verdict
	// Reason is a short label for logs and metrics ("auth", "http_404", "timeout").
	Reason string
	// Status is the HTTP status received, 0 when none was.
	Status int
	Err    error
}

func (o Outcome) Label() string {
	if o.Verdict == VerdictSuccess {
		return "success"
	}
	return o.Reason
}

// classifyStatus maps a received HTTP status. Only 200 counts as success;
// 401/403 abort since the credential is account-wide, not per model.
func classifyStatus(status int, body []byte, model string) Outcome {
	switch {
	case status == http.StatusOK:
		return Outcome{Verdict: VerdictSuccess, Status: status}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Outcome{
			Verdict: VerdictAbortChain,
			Reason:  ReasonAuth,
			Status:  status,
			Err:     &HTTPError{StatusCode: status, Body: preview(body), Model: model},
		}
	default:
		return Outcome{
			Verdict: VerdictRetryNext,
			Reason:  fmt.Sprintf("http_%d", status),
			Status:  status,
			Err:     &HTTPError{StatusCode: status, Body: preview(body), Model: model},
		}
	}
}

// classifyTransport maps a failure that produced no status. Unresolvable
// hosts and refused connections abort the chain because switching models
// cannot fix them; anything else moves on to the next candidate.
func classifyTransport(err error, model string) Outcome {
	wrap := func(kind string) error { return &TransportError{Kind: kind, Model: model, Err: err} }

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return Outcome{Verdict: VerdictAbortChain, Reason: ReasonUnresolved, Err: wrap(ReasonUnresolved)}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Outcome{Verdict: VerdictAbortChain, Reason: ReasonRefused, Err: wrap(ReasonRefused)}
	}
	if isTimeoutError(err) {
		return Outcome{Verdict: VerdictRetryNext, Reason: ReasonTimeout, Err: wrap(ReasonTimeout)}
	}
	if errors.Is(err, context.Canceled) {
		return Outcome{Verdict: VerdictRetryNext, Reason: ReasonCancelled, Err: wrap(ReasonCancelled)}
	}
	return Outcome{Verdict: VerdictRetryNext, Reason: ReasonTransport, Err: wrap("io")}
}

// classifyParse turns an unusable 200 into a retry.
func classifyParse(err error, model string, noContent bool) Outcome {
	reason := ReasonUnparseable
	if noContent {
		reason = ReasonNoContent
	}
	return Outcome{
		Verdict: VerdictRetryNext,
		Reason:  reason,
		Status:  http.StatusOK,
		Err:     &ParseError{Model: model, Err: err},
	}
}

// isTimeoutError checks if error is specifically a timeout
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

const previewBytes = 512

// preview trims a response body for logs without splitting a rune.
func preview(body []byte) string {
	if len(body) <= previewBytes {
		return string(body)
	}
	cut := previewBytes
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
