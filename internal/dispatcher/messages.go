package dispatcher

import (
	"fmt"
	"net/http"

	"github.com/local/contextblog/internal/ai"
)

// Caller-facing messages for kinds that must not fabricate content.
const (
	MsgUnconfigured = "I'm sorry, but the AI service is not configured. Please check the API key settings."

	MsgAuthFailure = "I'm sorry, but there was an authentication error. Please check the OPENROUTER_API_KEY setting of the backend.\n\n" +
		"Troubleshooting:\n" +
		"1. Verify the API key configured for the backend\n" +
		"2. Get a new key from https://openrouter.ai/keys\n" +
		"3. Ensure the key starts with 'sk-or-v1-'\n" +
		"4. Restart the backend after updating the key\n" +
		"5. Check the backend logs for detailed error messages"

	MsgUnresolved = "I'm sorry, but I cannot connect to the AI service. Please check your internet connection and ensure 'openrouter.ai' is accessible. " +
		"If you're behind a firewall or proxy, please configure it accordingly."
	MsgRefused = "I'm sorry, but I cannot connect to the AI service. Please check your internet connection and try again."

	MsgBadRequest       = "I'm sorry, but there was an error with the request format. Please check the backend logs for details."
	MsgExhaustedNoCode  = "I'm sorry, but all AI models failed. Please check your API key and network connection."
	MsgVisionExhausted  = "I'm sorry, but all vision models failed. Please try again later."
	MsgRequestCancelled = "I'm sorry, but the request was cancelled before the AI service answered. Please try again."
)

// abortMessage explains an aborted chain without naming the credential.
func abortMessage(reason string) string {
	switch reason {
	case ReasonAuth:
		return MsgAuthFailure
	case ReasonUnresolved:
		return MsgUnresolved
	case ReasonRefused:
		return MsgRefused
	default:
		return MsgRequestCancelled
	}
}

// exhaustedMessage composes the apology from the last status seen, if any.
func exhaustedMessage(kind ai.OperationKind, lastStatus int) string {
	switch {
	case lastStatus == http.StatusBadRequest:
		return MsgBadRequest
	case lastStatus != 0:
		return fmt.Sprintf("I'm sorry, but all AI models failed. Please check your API key and try again. Error: %d %s",
			lastStatus, http.StatusText(lastStatus))
	case kind == ai.KindAnalyzeImage:
		return MsgVisionExhausted
	default:
		return MsgExhaustedNoCode
	}
}
