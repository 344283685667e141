package conflict

import (
	"strings"
)

// Topics and actors that mark a news item as conflict-related. Matching is
// case-insensitive substring search over title and description.
var conflictKeywords = []string{
	"strike", "airstrike", "missile", "bomb", "bombing", "explosion",
	"attack", "killed", "dead", "casualties", "troops", "military",
	"war", "conflict", "offensive", "shelling", "drone", "rocket",
	"invasion", "assault", "clash", "ceasefire", "nuclear", "sanction",
	"iran", "gaza", "ukraine", "russia", "israel", "hamas", "hezbollah",
	"sudan", "yemen", "syria", "taliban", "houthi", "north korea",
}

// Filter screens raw items for conflict relevance and drops duplicate
// stories within a single run. Titles count as duplicates when their first
// 40 characters match; the first accepted item keeps the slot.
type Filter struct {
	seen map[string]bool
}

func NewFilter() *Filter {
	return &Filter{seen: make(map[string]bool)}
}

func (f *Filter) Accept(item RawItem) bool {
	if item.Title == "" {
		return false
	}
	key := truncateRunes(item.Title, seenTitleLen)
	if f.seen[key] {
		return false
	}
	if !containsAny(strings.ToLower(item.CombinedText()), conflictKeywords) {
		return false
	}
	f.seen[key] = true
	return true
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
