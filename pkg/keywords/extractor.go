package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor ranks terms by frequency (stopwords filtered). It is a pure
// function of its input: identical texts always yield identical terms, with
// frequency ties broken by first occurrence across the input.
type Extractor struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	minLength    int
}

// NewExtractor creates a frequency-based keyword extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
		minLength:    3,
	}
}

// TopTerms returns the n most frequent non-stopword terms across the texts.
func (e *Extractor) TopTerms(texts []string, n int) []string {
	if n <= 0 {
		n = 10
	}

	freq := map[string]int{}
	firstSeen := map[string]int{}
	position := 0

	for _, text := range texts {
		for _, tok := range e.tokens(text) {
			if len(tok) < e.minLength {
				continue
			}
			if _, ok := e.stopwords[tok]; ok {
				continue
			}
			if _, ok := firstSeen[tok]; !ok {
				firstSeen[tok] = position
			}
			freq[tok]++
			position++
		}
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if n > len(terms) {
		n = len(terms)
	}
	return terms[:n]
}

// Label builds a short human-readable label from the leading terms.
func (e *Extractor) Label(texts []string, maxTerms int) string {
	return LabelFromTerms(e.TopTerms(texts, maxTerms), maxTerms)
}

// LabelFromTerms joins up to maxTerms already-ranked terms into a label.
func LabelFromTerms(terms []string, maxTerms int) string {
	if len(terms) == 0 {
		return ""
	}
	if maxTerms > 0 && len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, capitalize(t))
	}
	return strings.Join(parts, " / ")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

func (e *Extractor) tokens(text string) []string {
	lower := strings.ToLower(text)
	return e.tokenPattern.FindAllString(lower, -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now", "have", "has", "had", "not", "what", "which", "who", "when", "where", "why", "how", "all", "each", "more", "most", "other", "some", "no", "nor", "only", "they", "them", "their", "its", "his", "her", "our", "you", "your", "we",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
