package ai

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// PlaceholderKey is the value shipped in sample configuration files.
const PlaceholderKey = "your-openai-api-key-here"

// OpenRouter keys carry this prefix; anything else is accepted but flagged.
const keyPrefix = "sk-or-v1-"

// CredentialState is the advisory classification of the configured key.
type CredentialState string

const (
	CredentialMissing   CredentialState = "unconfigured"
	CredentialMalformed CredentialState = "malformed"
	CredentialHealthy   CredentialState = "healthy"
)

// Guard decides whether the gateway may touch the network at all.
type Guard struct {
	apiKey string
}

func NewGuard(apiKey string) *Guard {
	return &Guard{apiKey: strings.TrimSpace(apiKey)}
}

// IsConfigured is true iff a non-placeholder credential is present.
func (g *Guard) IsConfigured() bool {
	if g == nil {
		return false
	}
	return g.apiKey != "" && g.apiKey != PlaceholderKey
}

// APIKey returns the credential for the transport. Never log it.
func (g *Guard) APIKey() string {
	if g == nil {
		return ""
	}
	return g.apiKey
}

func (g *Guard) State() CredentialState {
	switch {
	case !g.IsConfigured():
		return CredentialMissing
	case !strings.HasPrefix(g.apiKey, keyPrefix):
		return CredentialMalformed
	default:
		return CredentialHealthy
	}
}

// Masked returns a short prefix of the key safe for logs.
func (g *Guard) Masked() string {
	if !g.IsConfigured() {
		return ""
	}
	n := 12
	if len(g.apiKey) < n {
		n = len(g.apiKey) / 2
	}
	return g.apiKey[:n] + "..."
}

// LogStartup reports the credential state once. It never blocks startup.
func (g *Guard) LogStartup() {
	switch g.State() {
	case CredentialMissing:
		log.Warn().Msg("AI API key is not configured or uses the placeholder value; AI features will use fallback responses")
	case CredentialMalformed:
		log.Warn().Str("expected_prefix", keyPrefix).Msg("AI API key format may be incorrect")
	default:
		log.Info().Str("key_prefix", g.Masked()).Msg("AI API key configured")
	}
}
