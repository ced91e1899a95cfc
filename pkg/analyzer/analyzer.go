// Package analyzer bundles one document with the tables built from it so
// repeated queries do not rebuild them.
package analyzer

import (
	"sync"

	"github.com/bastiangx/pgalyzer/pkg/concordance"
	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/bastiangx/pgalyzer/pkg/freq"
	"github.com/bastiangx/pgalyzer/pkg/predict"
	"golang.org/x/sync/errgroup"
)

// Engine is what the REPL and the IPC server query.
type Engine interface {
	// NGrams returns the ranked n-grams, at most limit of them (0 for all)
	NGrams(n, limit int) ([]freq.Entry, error)

	// Words returns the ranked words, at most limit of them (0 for all)
	Words(limit int) []freq.Entry

	Concordance(word string, size int) ([]concordance.Window, error)
	DisplayConcordance(word string, size int, style concordance.Style) (string, error)

	LikelyNext(word string, n int) ([]predict.Neighbor, error)
	LikelyPrevious(word string, n int) ([]predict.Neighbor, error)

	// Complete returns ranked words starting with prefix
	Complete(prefix string, limit int) []freq.Entry

	Stats() map[string]int
}

// Analyzer is an Engine over a single document. The successor table,
// predecessor table and vocabulary are each built on first use and then
// shared. Safe for concurrent use.
type Analyzer struct {
	doc *document.Document

	wordsOnce sync.Once
	words     freq.Counts
	vocab     *freq.Vocabulary

	nextOnce sync.Once
	next     *predict.Table

	prevOnce sync.Once
	prev     *predict.Table

	ngrams *rankCache
}

var _ Engine = (*Analyzer)(nil)

// New wraps doc. Nothing is computed until the first query.
func New(doc *document.Document) *Analyzer {
	return NewWithCache(doc, DefaultCachedSizes)
}

// NewWithCache is New keeping the rankings of up to cachedSizes n-gram
// sizes. Zero disables the cache.
func NewWithCache(doc *document.Document, cachedSizes int) *Analyzer {
	return &Analyzer{doc: doc, ngrams: newRankCache(cachedSizes)}
}

// Document returns the analyzed document.
func (a *Analyzer) Document() *document.Document {
	return a.doc
}

func (a *Analyzer) loadWords() {
	a.wordsOnce.Do(func() {
		a.words = freq.Words(a.doc)
		a.vocab = freq.NewVocabulary(a.words)
	})
}

// Table returns the transition table for dir, building it once.
func (a *Analyzer) Table(dir predict.Direction) *predict.Table {
	if dir == predict.Previous {
		a.prevOnce.Do(func() { a.prev = predict.Build(a.doc, predict.Previous) })
		return a.prev
	}
	a.nextOnce.Do(func() { a.next = predict.Build(a.doc, predict.Next) })
	return a.next
}

// NGrams ranks the n-grams of size n. Rankings of recently used sizes
// are cached.
func (a *Analyzer) NGrams(n, limit int) ([]freq.Entry, error) {
	if n == 1 {
		return a.Words(limit), nil
	}
	if entries, ok := a.ngrams.get(n, limit); ok {
		return entries, nil
	}
	counts, err := freq.NGrams(a.doc, n)
	if err != nil {
		return nil, err
	}
	ranking := freq.Rank(counts)
	a.ngrams.put(n, ranking)
	return head(ranking, limit), nil
}

// CacheStats reports the n-gram cache usage.
func (a *Analyzer) CacheStats() map[string]int {
	return a.ngrams.stats()
}

func (a *Analyzer) Words(limit int) []freq.Entry {
	a.loadWords()
	return freq.Top(a.words, limit)
}

func (a *Analyzer) Concordance(word string, size int) ([]concordance.Window, error) {
	return concordance.Find(a.doc, word, size)
}

func (a *Analyzer) DisplayConcordance(word string, size int, style concordance.Style) (string, error) {
	return concordance.DisplayFor(a.doc, word, size, style)
}

func (a *Analyzer) LikelyNext(word string, n int) ([]predict.Neighbor, error) {
	return a.Table(predict.Next).Top(word, n)
}

func (a *Analyzer) LikelyPrevious(word string, n int) ([]predict.Neighbor, error) {
	return a.Table(predict.Previous).Top(word, n)
}

func (a *Analyzer) Complete(prefix string, limit int) []freq.Entry {
	a.loadWords()
	return a.vocab.Complete(prefix, limit)
}

// Stats reports document and vocabulary sizes. It forces the word table.
func (a *Analyzer) Stats() map[string]int {
	a.loadWords()
	cleaned := 0
	if a.doc.Cleaned() {
		cleaned = 1
	}
	return map[string]int{
		"lines":       a.doc.NumLines(),
		"tokens":      a.doc.NumTokens(),
		"uniqueWords": a.vocab.Len(),
		"cleaned":     cleaned,
	}
}

// Warm builds the word table and both transition tables in parallel so
// the first queries do not pay for them.
func (a *Analyzer) Warm() error {
	var g errgroup.Group
	g.Go(func() error {
		a.loadWords()
		return nil
	})
	g.Go(func() error {
		a.Table(predict.Next)
		return nil
	})
	g.Go(func() error {
		a.Table(predict.Previous)
		return nil
	})
	return g.Wait()
}
