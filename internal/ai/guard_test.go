package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		key        string
		configured bool
		state      CredentialState
	}{
		{"", false, CredentialMissing},
		{"   ", false, CredentialMissing},
		{PlaceholderKey, false, CredentialMissing},
		{"abc123", true, CredentialMalformed},
		{"sk-or-v1-0123456789abcdef", true, CredentialHealthy},
	}
	for _, tt := range tests {
		g := NewGuard(tt.key)
		assert.Equal(t, tt.configured, g.IsConfigured(), "key %q", tt.key)
		assert.Equal(t, tt.state, g.State(), "key %q", tt.key)
	}
}

func TestGuardNilIsUnconfigured(t *testing.T) {
	var g *Guard
	assert.False(t, g.IsConfigured())
	assert.Equal(t, "", g.APIKey())
}

func TestGuardMasked(t *testing.T) {
	assert.Equal(t, "sk-or-v1-012...", NewGuard("sk-or-v1-0123456789abcdef").Masked())
	assert.Equal(t, "abc...", NewGuard("abcdef").Masked())
	assert.Equal(t, "", NewGuard("").Masked())
}
