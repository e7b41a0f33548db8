package dispatcher

import (
	"fmt"
	"strings"

	"github.com/local/contextblog/internal/ai"
)

const (
	summaryPrefixRunes = 200
	fallbackTagLimit   = 5
	fallbackTagMinLen  = 5
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields("the a an and or but in on at to for of with by is are was were be been have has had " +
		"do does did will would could should may might must can this that these those i you he she it we they") {
		stopWords[w] = struct{}{}
	}
}

// LocalSummary returns the content itself, or its first 200 runes plus "...".
func LocalSummary(content string) string {
	r := []rune(content)
	if len(r) <= summaryPrefixRunes {
		return content
	}
	return string(r[:summaryPrefixRunes]) + "..."
}

// LocalTags extracts up to five distinct lowercase words longer than four
// runes from title and content, skipping stop words, in first-seen order.
func LocalTags(title, content string) []string {
	tags := make([]string, 0, fallbackTagLimit)
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(title + " " + content)) {
		if len([]rune(w)) < fallbackTagMinLen {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tags = append(tags, w)
		if len(tags) == fallbackTagLimit {
			break
		}
	}
	return tags
}

type cannedNews struct {
	title, summary, category, imageID string
}

var fallbackNews = []cannedNews{
	{
		"India's Tech Sector Sees Record Growth in 2024",
		"India's technology sector continues to expand rapidly, with major investments in AI, cloud computing, and digital infrastructure driving unprecedented growth across the nation.",
		"Technology", "1677442136019-21780ecad995",
	},
	{
		"Indian Cricket Team Prepares for World Cup",
		"The Indian cricket team is gearing up for the upcoming World Cup with intensive training sessions and strategic planning to bring home the championship trophy.",
		"Sports", "1579952363873-27f3b1cddf47",
	},
	{
		"Startup Ecosystem in India Reaches New Heights",
		"India's startup ecosystem continues to flourish, with thousands of new ventures emerging across various sectors, supported by government initiatives and private investments.",
		"Business", "1551288049-beb63bb97e33",
	},
	{
		"Digital India Initiative Transforms Rural Connectivity",
		"The Digital India initiative is making significant progress in connecting rural areas with high-speed internet, transforming lives and creating new opportunities for millions.",
		"Technology", "1677442136019-21780ecad995",
	},
	{
		"Indian Space Program Achieves Major Milestone",
		"India's space program achieves another milestone with successful satellite launches and ambitious missions planned for the future, showcasing the nation's technological prowess.",
		"Science", "1677442136019-21780ecad995",
	},
	{
		"Bollywood Industry Embraces AI in Film Production",
		"Bollywood is increasingly adopting AI and advanced technologies in film production, revolutionizing the entertainment industry and creating new possibilities for storytelling.",
		"Entertainment", "1485846234645-a62644f84728",
	},
	{
		"Indian Economy Shows Strong Growth Indicators",
		"India's economy demonstrates strong growth indicators with robust GDP expansion, increased foreign investments, and positive outlook for the coming fiscal year.",
		"Business", "1551288049-beb63bb97e33",
	},
	{
		"Healthcare Innovation in India Gains Global Recognition",
		"Healthcare innovation in India is gaining global recognition with breakthrough medical technologies, affordable solutions, and improved access to quality healthcare services.",
		"Health", "1571019613454-1cb2f99b2d8b",
	},
}

// LocalNews returns the first count canned items (at most eight).
func LocalNews(count int) []ai.NewsItem {
	if count > len(fallbackNews) {
		count = len(fallbackNews)
	}
	if count < 0 {
		count = 0
	}
	items := make([]ai.NewsItem, 0, count)
	for _, n := range fallbackNews[:count] {
		items = append(items, ai.NewsItem{
			Title:     n.title,
			Summary:   n.summary,
			Category:  n.category,
			Thumbnail: fmt.Sprintf("https://images.unsplash.com/photo-%s?w=400&h=300&fit=crop&auto=format", n.imageID),
		})
	}
	return items
}
