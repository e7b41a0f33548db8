package ai

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagPromptTruncatesContent(t *testing.T) {
	content := strings.Repeat("é", 1500)
	p := TagPrompt("Title", content)
	require.Len(t, p.Messages, 2)
	user := p.Messages[1].Text
	assert.True(t, strings.HasSuffix(user, strings.Repeat("é", 1000)))
	assert.False(t, strings.Contains(user, strings.Repeat("é", 1001)))
	assert.Equal(t, 50, p.MaxTokens)
	assert.Equal(t, KindTag, p.Kind)
}

func TestSuggestPromptKeepsTrailingWindow(t *testing.T) {
	text := strings.Repeat("a", 600) + strings.Repeat("b", 500)
	p := SuggestPrompt(text, "")
	user := p.Messages[1].Text
	assert.True(t, strings.HasSuffix(user, "Current text: "+strings.Repeat("b", 500)))
	assert.NotContains(t, user, "Context:")

	p = SuggestPrompt("short", " travel blog ")
	assert.Contains(t, p.Messages[1].Text, "Context: travel blog\n\n")
}

func TestPromptTemperatures(t *testing.T) {
	assert.Equal(t, 0.7, SummarizePrompt("x").Temperature)
	assert.Equal(t, 0.7, SolvePrompt("x").Temperature)
	assert.Equal(t, 0.2, ImagePrompt(ParseImage("AAAA")).Temperature)
	assert.Equal(t, 0.3, NewsPrompt(4, time.Now()).Temperature)
}

func TestNewsPromptMentionsCountAndDate(t *testing.T) {
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	p := NewsPrompt(6, day)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "user", p.Messages[0].Role)
	assert.Contains(t, p.Messages[0].Text, "Provide 6 REAL")
	assert.Contains(t, p.Messages[0].Text, "2026-03-14")
}

func TestImagePromptWireShape(t *testing.T) {
	req := ImagePrompt(ParseImage("data:image/png;base64,AAAA")).For("openai/gpt-4o")
	b, err := json.Marshal(req)
	require.NoError(t, err)

	var wire struct {
		Model    string `json:"model"`
		Stream   bool   `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Type     string `json:"type"`
				Text     string `json:"text"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.Equal(t, "openai/gpt-4o", wire.Model)
	assert.False(t, wire.Stream)
	assert.Equal(t, 1000, wire.MaxTokens)
	require.Len(t, wire.Messages, 1)
	require.Len(t, wire.Messages[0].Content, 2)
	assert.Equal(t, "text", wire.Messages[0].Content[0].Type)
	assert.Contains(t, wire.Messages[0].Content[0].Text, "full name")
	assert.Equal(t, "image_url", wire.Messages[0].Content[1].Type)
	assert.Equal(t, "data:image/png;base64,AAAA", wire.Messages[0].Content[1].ImageURL.URL)
}

func TestTextMessageMarshalsStringContent(t *testing.T) {
	b, err := json.Marshal(Message{Role: "system", Text: "be brief"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"system","content":"be brief"}`, string(b))
}
