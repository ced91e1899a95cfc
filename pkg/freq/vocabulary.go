package freq

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Vocabulary indexes word counts in a patricia trie for prefix lookups.
type Vocabulary struct {
	trie  *patricia.Trie
	words int
}

// NewVocabulary builds the trie from counts, usually the result of Words.
func NewVocabulary(counts Counts) *Vocabulary {
	trie := patricia.NewTrie()
	for word, count := range counts {
		trie.Insert(patricia.Prefix(word), count)
	}
	return &Vocabulary{
		trie:  trie,
		words: len(counts),
	}
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	return v.words
}

// Count returns how often word occurred, 0 if never.
func (v *Vocabulary) Count(word string) int {
	if word == "" {
		return 0
	}
	item := v.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0
	}
	return item.(int)
}

// Complete returns the words starting with prefix, the prefix itself
// excluded, ranked like Rank. A limit of 0 or less returns all of them.
func (v *Vocabulary) Complete(prefix string, limit int) []Entry {
	var entries []Entry
	visit := func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		entries = append(entries, Entry{Text: word, Count: item.(int)})
		return nil
	}

	// patricia rejects a nil prefix, so an empty one walks the whole trie
	if prefix == "" {
		_ = v.trie.Visit(visit)
	} else {
		_ = v.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}

	sortEntries(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
