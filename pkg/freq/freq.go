// Package freq counts n-grams and words over a document and ranks them.
package freq

import (
	"errors"
	"sort"
	"strings"

	"github.com/bastiangx/pgalyzer/pkg/document"
)

// ErrInvalidSize is returned for an n-gram size below 1.
var ErrInvalidSize = errors.New("n-gram size must be at least 1")

// Counts maps an n-gram (tokens joined by one space) to its occurrences.
type Counts map[string]int

// Entry is one ranked n-gram.
type Entry struct {
	Text  string
	Count int
}

// NGrams counts every n-token window of every line. Lines shorter than n
// contribute nothing and no window crosses a line boundary.
func NGrams(doc *document.Document, n int) (Counts, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	counts := make(Counts)
	doc.EachLine(func(tokens []string) {
		countLine(counts, tokens, n)
	})
	return counts, nil
}

// Words counts single tokens. Same as NGrams with n = 1.
func Words(doc *document.Document) Counts {
	counts := make(Counts)
	doc.EachLine(func(tokens []string) {
		for _, token := range tokens {
			counts[token]++
		}
	})
	return counts
}

func countLine(counts Counts, tokens []string, n int) {
	for i := 0; i+n <= len(tokens); i++ {
		if n == 1 {
			counts[tokens[i]]++
			continue
		}
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
}

// Rank orders counts by count descending, then by case-insensitive text,
// then by raw text so the order is total.
func Rank(counts Counts) []Entry {
	entries := make([]Entry, 0, len(counts))
	for text, count := range counts {
		entries = append(entries, Entry{Text: text, Count: count})
	}
	sortEntries(entries)
	return entries
}

// Top returns the first limit entries of Rank. A limit of 0 or less
// returns the full ranking.
func Top(counts Counts, limit int) []Entry {
	entries := Rank(counts)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Total sums all counts.
func Total(counts Counts) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
}

func less(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	la, lb := strings.ToLower(a.Text), strings.ToLower(b.Text)
	if la != lb {
		return la < lb
	}
	return a.Text < b.Text
}
