package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNoCompletion = errors.New("response has no choices[0].message.content")
	ErrEmptyContent = errors.New("completion content is empty")
	ErrNoTags       = errors.New("completion contains no tags")
	ErrNotNewsArray = errors.New("completion is not a JSON array of news items")
)

const maxTags = 5

const thumbnailURL = "https://images.unsplash.com/photo-%s?w=400&h=300&fit=crop&auto=format"

const defaultThumbnailID = "1551288049-beb63bb97e33"

var thumbnailIDs = map[string]string{
	"technology":      "1677442136019-21780ecad995",
	"ai/ml":           "1677442136019-21780ecad995",
	"science":         "1677442136019-21780ecad995",
	"sports":          "1579952363873-27f3b1cddf47",
	"cricket":         "1579952363873-27f3b1cddf47",
	"football":        "1579952363873-27f3b1cddf47",
	"politics":        "1551288049-beb63bb97e33",
	"business":        "1551288049-beb63bb97e33",
	"entertainment":   "1485846234645-a62644f84728",
	"bollywood":       "1485846234645-a62644f84728",
	"health":          "1571019613454-1cb2f99b2d8b",
	"education":       "1571019613454-1cb2f99b2d8b",
	"web development": "1633356122544-f134324a6cee",
	"programming":     "1555066931-4365d14bab8c",
	"design":          "1561070791-2526d30994b5",
}

// Defaults for news fields the model left out.
const (
	DefaultNewsTitle    = "News Title"
	DefaultNewsSummary  = "News summary"
	DefaultNewsCategory = "Technology"
)

// ExtractContent pulls choices[0].message.content out of a completion envelope.
func ExtractContent(body []byte) (string, error) {
	res := gjson.GetBytes(body, "choices.0.message.content")
	if !res.Exists() || res.Type == gjson.Null {
		return "", ErrNoCompletion
	}
	return res.String(), nil
}

// ParseText trims a free-text completion and rejects blank answers.
func ParseText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// ParseTags splits a comma-separated tag list, keeping at most five.
func ParseTags(text string) ([]string, error) {
	var tags []string
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	if len(tags) == 0 {
		return nil, ErrNoTags
	}
	return tags, nil
}

// StripCodeFences removes markdown code fence markers wherever they appear.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseNews reads a JSON array of {title, summary, category} objects, fills
// missing fields and attaches a thumbnail. At most limit items are returned
// when limit > 0.
func ParseNews(text string, limit int) ([]NewsItem, error) {
	text = StripCodeFences(text)
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNotNewsArray)
	}
	root := gjson.Parse(text)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: got %s", ErrNotNewsArray, root.Type)
	}

	var items []NewsItem
	root.ForEach(func(_, item gjson.Result) bool {
		n := NewsItem{
			Title:    stringOr(item.Get("title"), DefaultNewsTitle),
			Summary:  stringOr(item.Get("summary"), DefaultNewsSummary),
			Category: stringOr(item.Get("category"), DefaultNewsCategory),
		}
		n.Thumbnail = Thumbnail(n.Category)
		items = append(items, n)
		return limit <= 0 || len(items) < limit
	})
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrNotNewsArray)
	}
	return items, nil
}

// Thumbnail maps a category to a stable stock image URL.
func Thumbnail(category string) string {
	id, ok := thumbnailIDs[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		id = defaultThumbnailID
	}
	return fmt.Sprintf(thumbnailURL, id)
}

func stringOr(r gjson.Result, def string) string {
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.String()
}
