package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/models"
)

// Global word frequencies are capped at the top 50 entries.
const maxWordFrequencies = 50

// Matches everything except word characters and whitespace.
var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Computes word-frequency and per-user vocabulary statistics over post
// titles. Stateless; safe for concurrent use across requests.
type TextAnalyzer struct {
	stopWords map[string]struct{}
}

// Creates a TextAnalyzer with the essential stop-word set.
func New() *TextAnalyzer {
	stopWords := make(map[string]struct{})
	for _, word := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on",
		"at", "to", "of", "for", "with", "by",
	} {
		stopWords[word] = struct{}{}
	}
	return &TextAnalyzer{stopWords: stopWords}
}

// Lowercases, strips special characters and trims surrounding whitespace.
func (a *TextAnalyzer) CleanText(text string) string {
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(strings.ToLower(text), ""))
}

// Splits cleaned text into words, dropping stop words and tokens of two
// characters or fewer.
func (a *TextAnalyzer) ExtractWords(text string) []string {
	var words []string
	for _, word := range strings.Fields(a.CleanText(text)) {
		if _, stop := a.stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Counts word occurrences across all post titles and returns the top entries
// by count descending. Ties keep first-encounter order.
func (a *TextAnalyzer) WordFrequencies(posts []models.Post) []models.WordFrequency {
	counts := make(map[string]int)
	var order []string

	for _, post := range posts {
		for _, word := range a.ExtractWords(post.Title) {
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxWordFrequencies {
		order = order[:maxWordFrequencies]
	}

	frequencies := make([]models.WordFrequency, 0, len(order))
	for _, word := range order {
		frequencies = append(frequencies, models.WordFrequency{Word: word, Count: counts[word]})
	}

	logger.Log.Debug("Calculated word frequencies",
		zap.Int("posts", len(posts)),
		zap.Int("words", len(frequencies)))
	return frequencies
}

// Builds per-user vocabulary summaries: the union of extracted words across
// each user's titles plus their post count, sorted by unique word count
// descending. Ties keep the order users were first encountered in; word
// lists are emitted sorted so responses are deterministic.
func (a *TextAnalyzer) UserUniqueWords(posts []models.Post) []models.UserSummary {
	userWords := make(map[int]map[string]struct{})
	userPosts := make(map[int]int)
	var userOrder []int

	for _, post := range posts {
		if _, seen := userWords[post.UserID]; !seen {
			userWords[post.UserID] = make(map[string]struct{})
			userOrder = append(userOrder, post.UserID)
		}
		for _, word := range a.ExtractWords(post.Title) {
			userWords[post.UserID][word] = struct{}{}
		}
		userPosts[post.UserID]++
	}

	summaries := make([]models.UserSummary, 0, len(userOrder))
	for _, userID := range userOrder {
		words := make([]string, 0, len(userWords[userID]))
		for word := range userWords[userID] {
			words = append(words, word)
		}
		sort.Strings(words)

		summaries = append(summaries, models.UserSummary{
			UserID:          userID,
			UniqueWordCount: len(words),
			TotalPosts:      userPosts[userID],
			UniqueWords:     words,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UniqueWordCount > summaries[j].UniqueWordCount
	})

	logger.Log.Debug("Calculated unique words", zap.Int("users", len(summaries)))
	return summaries
}

// Returns the first topN users by unique word count.
func (a *TextAnalyzer) TopUsersByUniqueWords(posts []models.Post, topN int) []models.UserSummary {
	summaries := a.UserUniqueWords(posts)
	if topN < 0 {
		topN = 0
	}
	if topN > len(summaries) {
		topN = len(summaries)
	}
	return summaries[:topN]
}
