// Package predict builds first-order transition tables over a document:
// for every word, which words follow it (Next) or precede it (Previous)
// and how often.
package predict

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/pgalyzer/pkg/document"
)

var (
	// ErrNotFound means the word never appeared in the queried role.
	ErrNotFound = errors.New("word not found")
	// ErrInvalidLimit is returned for a result limit below 1.
	ErrInvalidLimit = errors.New("limit must be at least 1")
)

// Direction selects the neighbor recorded for each adjacent pair.
type Direction int

const (
	// Next records the word that follows.
	Next Direction = iota
	// Previous records the word that precedes.
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Neighbor is an adjacent word and how often it was seen.
type Neighbor struct {
	Word  string
	Count int
}

// Table maps a word to its neighbors ranked by count descending, ties
// broken by neighbor word ascending.
type Table struct {
	dir     Direction
	entries map[string][]Neighbor
}

// Build scans every adjacent token pair of every line once and ranks the
// neighbors of each word.
func Build(doc *document.Document, dir Direction) *Table {
	raw := make(map[string]map[string]int)
	doc.EachLine(func(tokens []string) {
		for i := 0; i+1 < len(tokens); i++ {
			key, neighbor := tokens[i], tokens[i+1]
			if dir == Previous {
				key, neighbor = neighbor, key
			}
			seen := raw[key]
			if seen == nil {
				seen = make(map[string]int)
				raw[key] = seen
			}
			seen[neighbor]++
		}
	})

	entries := make(map[string][]Neighbor, len(raw))
	for key, seen := range raw {
		entries[key] = rank(seen)
	}
	return &Table{dir: dir, entries: entries}
}

func rank(seen map[string]int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(seen))
	for word, count := range seen {
		neighbors = append(neighbors, Neighbor{Word: word, Count: count})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Count != neighbors[j].Count {
			return neighbors[i].Count > neighbors[j].Count
		}
		return neighbors[i].Word < neighbors[j].Word
	})
	return neighbors
}

// Direction returns the direction the table was built for.
func (t *Table) Direction() Direction {
	return t.dir
}

// Top returns up to n neighbors of word. A word absent from the table
// yields an error wrapping ErrNotFound; a word with fewer than n
// neighbors yields a shorter list and no error.
func (t *Table) Top(word string, n int) ([]Neighbor, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	neighbors, ok := t.entries[word]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no %s word", ErrNotFound, word, t.dir)
	}
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	out := make([]Neighbor, len(neighbors))
	copy(out, neighbors)
	return out, nil
}

// Has reports whether word has at least one neighbor.
func (t *Table) Has(word string) bool {
	_, ok := t.entries[word]
	return ok
}

// Len returns the number of words with at least one neighbor.
func (t *Table) Len() int {
	return len(t.entries)
}

// Words returns the table keys in ascending order.
func (t *Table) Words() []string {
	words := make([]string, 0, len(t.entries))
	for w := range t.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Total sums the neighbor counts of word, 0 if absent.
func (t *Table) Total(word string) int {
	total := 0
	for _, n := range t.entries[word] {
		total += n.Count
	}
	return total
}

// LikelyNext builds the successor table and returns the top n words that
// follow word.
func LikelyNext(doc *document.Document, word string, n int) ([]Neighbor, error) {
	return Build(doc, Next).Top(word, n)
}

// LikelyPrevious builds the predecessor table and returns the top n words
// that precede word.
func LikelyPrevious(doc *document.Document, word string, n int) ([]Neighbor, error) {
	return Build(doc, Previous).Top(word, n)
}
