package ai

import (
	"fmt"
	"strings"
	"time"
)

const (
	// tag generation sees only the head of long posts
	tagContentLimit = 1000
	// suggestions look at the trailing window the author is writing
	suggestWindow = 500
)

const (
	summarizeSystem = "You are a helpful assistant that generates comprehensive summaries of blog posts."
	tagSystem       = "You are a helpful assistant that generates relevant tags for blog posts. Return only a comma-separated list of 3-5 tags, no other text."
	suggestSystem   = "You are a helpful writing assistant. Provide brief, helpful suggestions to continue or improve the text. Keep suggestions concise (1-2 sentences max)."
	solveSystem     = "You are a helpful AI assistant that provides clear, concise, and accurate answers to user questions. Be friendly and professional."
)

const imageInstruction = "You are an expert at identifying famous people, celebrities, actors, and public figures. " +
	"Analyze this image carefully. If a person is visible and you recognize them as a public figure " +
	"(actor, singer, politician, athlete or any other well-known person), you MUST state their full name " +
	"at the very beginning of your response, followed by their profession and nationality. " +
	"Then describe the image in detail: clothing, setting, expression, mood, colors and other visual elements. " +
	"If you cannot identify the person, say 'I cannot identify this person' and still provide a detailed visual description."

const newsTemplate = "You are a news aggregator. Provide %d REAL, ACTUAL news headlines from India that happened TODAY (%s) or in the last 24 hours. " +
	"These must be REAL news events, not generic or hypothetical news. " +
	"Include actual news from categories: Politics, Technology, Sports, Entertainment, Business, Education, Health, Science, Crime, Weather, Economy. " +
	"Each news item must be: " +
	"1. A REAL event that actually happened recently in India " +
	"2. Include specific details, names, places, or events " +
	"3. Have a detailed summary (100-150 words) explaining what happened " +
	"Format as JSON array with objects containing: title (specific and real), summary (detailed, 100-150 words), category. " +
	"Return ONLY valid JSON array, no markdown, no code blocks, no explanations. " +
	`Example format: [{"title": "Specific Real News Headline", "summary": "Detailed explanation...", "category": "Politics"}]`

func SummarizePrompt(content string) Prompt {
	return Prompt{
		Kind: KindSummarize,
		Messages: []Message{
			{Role: "system", Text: summarizeSystem},
			{Role: "user", Text: "Generate a comprehensive summary (4-6 sentences) of the following blog post. " +
				"Cover the main points, key ideas, and important details:\n\n" + content},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

func TagPrompt(title, content string) Prompt {
	return Prompt{
		Kind: KindTag,
		Messages: []Message{
			{Role: "system", Text: tagSystem},
			{Role: "user", Text: "Generate 3-5 relevant tags for this blog post:\n\nTitle: " + title +
				"\n\nContent: " + headRunes(content, tagContentLimit)},
		},
		MaxTokens:   50,
		Temperature: 0.7,
	}
}

func SuggestPrompt(text, context string) Prompt {
	var b strings.Builder
	b.WriteString("Based on the following text, provide a brief suggestion for what to write next or how to improve it:\n\n")
	if context = strings.TrimSpace(context); context != "" {
		b.WriteString("Context: " + context + "\n\n")
	}
	b.WriteString("Current text: " + tailRunes(text, suggestWindow))

	return Prompt{
		Kind: KindSuggest,
		Messages: []Message{
			{Role: "system", Text: suggestSystem},
			{Role: "user", Text: b.String()},
		},
		MaxTokens:   100,
		Temperature: 0.7,
	}
}

func SolvePrompt(question string) Prompt {
	return Prompt{
		Kind: KindSolve,
		Messages: []Message{
			{Role: "system", Text: solveSystem},
			{Role: "user", Text: question},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// ImagePrompt carries the identification instruction and the image as one
// multimodal user message.
func ImagePrompt(img ImagePayload) Prompt {
	return Prompt{
		Kind: KindAnalyzeImage,
		Messages: []Message{{
			Role: "user",
			Parts: []ContentPart{
				{Type: "text", Text: imageInstruction},
				{Type: "image_url", ImageURL: &ImageURL{URL: img.URL()}},
			},
		}},
		MaxTokens:   1000,
		Temperature: 0.2,
	}
}

func NewsPrompt(count int, today time.Time) Prompt {
	return Prompt{
		Kind: KindGenerateNews,
		Messages: []Message{
			{Role: "user", Text: fmt.Sprintf(newsTemplate, count, today.Format("2006-01-02"))},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	}
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func tailRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
