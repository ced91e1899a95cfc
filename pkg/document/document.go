/*
Package document turns raw e-book text into an immutable, line oriented
token stream that every analysis engine reads from.

A Document is built once per input, either from a complete text body:

	doc := document.Load(text, true)

or from a first line that was already consumed by the caller plus the rest
of a stream (the shape produced when reading Project Gutenberg text from
stdin):

	doc, err := document.FromStream(first, os.Stdin, true)

Line boundaries are hard boundaries: no n-gram, bigram or concordance
window ever crosses one.
*/
package document

import (
	"fmt"
	"io"
	"strings"
)

// Document is the canonical body of one text plus its tokenized lines.
// It is never mutated after construction.
type Document struct {
	body    string
	lines   [][]string
	cleaned bool
	tokens  int
}

// Load builds a Document from a complete text body.
// With clean set the body goes through Normalize first.
func Load(raw string, clean bool) *Document {
	return LoadWithOptions(raw, clean, DefaultOptions())
}

// LoadWithOptions is Load with custom cleaning markers and punctuation.
func LoadWithOptions(raw string, clean bool, opts Options) *Document {
	body := raw
	if clean {
		body = NormalizeWithOptions(raw, opts)
	}
	return newDocument(body, clean)
}

// FromStream builds a Document from an already-read first line and the
// remaining stream. Carriage returns in the stream are replaced by spaces
// before the two parts are joined.
func FromStream(first string, r io.Reader, clean bool) (*Document, error) {
	return FromStreamWithOptions(first, r, clean, DefaultOptions())
}

// FromStreamWithOptions is FromStream with custom cleaning options.
func FromStreamWithOptions(first string, r io.Reader, clean bool, opts Options) (*Document, error) {
	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read remaining stream: %w", err)
	}
	raw := first + strings.ReplaceAll(string(rest), "\r", " ")
	return LoadWithOptions(raw, clean, opts), nil
}

func newDocument(body string, cleaned bool) *Document {
	lines := Tokenize(body)
	count := 0
	for _, line := range lines {
		count += len(line)
	}
	return &Document{
		body:    body,
		lines:   lines,
		cleaned: cleaned,
		tokens:  count,
	}
}

// Body returns the canonical text.
func (d *Document) Body() string {
	return d.body
}

// Cleaned reports whether the body went through Normalize.
func (d *Document) Cleaned() bool {
	return d.cleaned
}

// NumLines returns the number of lines, empty ones included.
func (d *Document) NumLines() int {
	return len(d.lines)
}

// NumTokens returns the number of tokens across all lines.
func (d *Document) NumTokens() int {
	return d.tokens
}

// Line returns the tokens of line i. The slice is shared with the
// Document and must not be modified.
func (d *Document) Line(i int) []string {
	return d.lines[i]
}

// Lines returns a copy of the tokenized lines.
func (d *Document) Lines() [][]string {
	out := make([][]string, len(d.lines))
	for i, line := range d.lines {
		out[i] = append([]string(nil), line...)
	}
	return out
}

// EachLine calls fn for every line in order without copying.
// fn must treat tokens as read-only.
func (d *Document) EachLine(fn func(tokens []string)) {
	for _, line := range d.lines {
		fn(line)
	}
}
