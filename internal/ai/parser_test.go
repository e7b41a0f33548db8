package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	text, err := ExtractContent([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	for _, body := range []string{
		`{}`,
		`{"choices":[]}`,
		`{"choices":[{"message":{}}]}`,
		`{"choices":[{"message":{"content":null}}]}`,
		`{"error":{"message":"model overloaded"}}`,
		`not json`,
	} {
		_, err := ExtractContent([]byte(body))
		assert.ErrorIs(t, err, ErrNoCompletion, body)
	}
}

func TestParseText(t *testing.T) {
	got, err := ParseText("  an answer \n")
	require.NoError(t, err)
	assert.Equal(t, "an answer", got)

	_, err = ParseText(" \n\t")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags(" go, concurrency ,, channels,testing,tooling,extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "concurrency", "channels", "testing", "tooling"}, tags)

	_, err = ParseTags(" , ,")
	assert.ErrorIs(t, err, ErrNoTags)
}

func TestParseNews(t *testing.T) {
	items := func(n int) string {
		s := "["
		for i := 0; i < n; i++ {
			if i > 0 {
				s += ","
			}
			s += fmt.Sprintf(`{"title":"t%d","summary":"s%d","category":"Sports"}`, i, i)
		}
		return s + "]"
	}

	t.Run("longer array is cut to limit", func(t *testing.T) {
		got, err := ParseNews(items(6), 4)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "t3", got[3].Title)
	})

	t.Run("shorter array is returned whole", func(t *testing.T) {
		got, err := ParseNews(items(2), 4)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("code fences are stripped", func(t *testing.T) {
		got, err := ParseNews("```json\n"+items(1)+"\n```", 4)
		require.NoError(t, err)
		assert.Equal(t, Thumbnail("sports"), got[0].Thumbnail)
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		got, err := ParseNews(`[{}]`, 4)
		require.NoError(t, err)
		assert.Equal(t, NewsItem{
			Title:     DefaultNewsTitle,
			Summary:   DefaultNewsSummary,
			Category:  DefaultNewsCategory,
			Thumbnail: Thumbnail(DefaultNewsCategory),
		}, got[0])
	})

	for _, bad := range []string{"", "[]", `{"title":"x"}`, "Here is the news: [", "```json\n```"} {
		_, err := ParseNews(bad, 4)
		assert.True(t, errors.Is(err, ErrNotNewsArray), "input %q", bad)
	}
}

func TestThumbnail(t *testing.T) {
	def := "https://images.unsplash.com/photo-1551288049-beb63bb97e33?w=400&h=300&fit=crop&auto=format"
	assert.Equal(t, def, Thumbnail("Weather"))
	assert.Equal(t, def, Thumbnail(""))
	assert.Equal(t, Thumbnail("Cricket"), Thumbnail("sports"))
	assert.Equal(t, Thumbnail(" AI/ML "), Thumbnail("technology"))
	assert.Contains(t, Thumbnail("Web Development"), "1633356122544-f134324a6cee")
	// same input, same output
	assert.Equal(t, Thumbnail("Crime"), Thumbnail("Crime"))
}
