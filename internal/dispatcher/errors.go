package dispatcher

import "fmt"

// HTTPError represents a non-success HTTP status from the AI provider
type HTTPError struct {
	StatusCode int
	Body       string
	Model      string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.Model, e.Body)
}

// ParseError means a 200 reply whose content could not be used
type ParseError struct {
	Model string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unusable completion from %s: %v", e.Model, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError wraps a failure that produced no HTTP status
type TransportError struct {
	Kind  string // dns, refused, timeout, cancelled, io
	Model string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s error calling %s: %v", e.Kind, e.Model, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
