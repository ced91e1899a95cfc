/*
Package concordance extracts keyword-in-context windows from a document.

Each occurrence of a word yields a Window holding up to size tokens before
and after it, taken from the occurrence's own line only:

	windows, err := concordance.Find(doc, "mary", 4)

Display aligns the windows so the target word lines up in one column:

	                            **mary** had a little lamb
	   snow and everywhere that **mary** went the lamb was
*/
package concordance

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/pgalyzer/pkg/document"
)

// ErrInvalidSize is returned for a negative neighborhood size.
var ErrInvalidSize = errors.New("neighborhood size must not be negative")

// Window is the context around one occurrence of a word.
type Window struct {
	Before string
	After  string
}

// Style decorates the rendered block and the target word.
type Style struct {
	BlockStart string
	BlockEnd   string
	Mark       func(word string) string
}

var (
	// HTML wraps the block in <pre> and the word in <b>.
	HTML = Style{
		BlockStart: "<pre>",
		BlockEnd:   "</pre>",
		Mark:       func(w string) string { return "<b>" + w + "</b>" },
	}
	// Plain marks the word with ** and adds no block markers.
	Plain = Style{
		Mark: func(w string) string { return "**" + w + "**" },
	}
)

// Find returns one Window per occurrence of word, in line order and then
// left to right within a line. No occurrence is not an error.
func Find(doc *document.Document, word string, size int) ([]Window, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	windows := []Window{}
	doc.EachLine(func(tokens []string) {
		for i, token := range tokens {
			if token != word {
				continue
			}
			windows = append(windows, around(tokens, i, size))
		}
	})
	return windows, nil
}

func around(tokens []string, i, size int) Window {
	back := i - size
	if back < 0 {
		back = 0
	}
	fwd := i + size + 1
	if fwd > len(tokens) {
		fwd = len(tokens)
	}
	return Window{
		Before: strings.Join(tokens[back:i], " "),
		After:  strings.Join(tokens[i+1:fwd], " "),
	}
}

// Display renders windows one per line with every Before right aligned to
// the longest one. The first line carries style.BlockStart and the last
// style.BlockEnd. No windows renders as the empty string.
func Display(windows []Window, word string, style Style) string {
	if len(windows) == 0 {
		return ""
	}

	width := 0
	for _, w := range windows {
		if n := utf8.RuneCountInString(w.Before); n > width {
			width = n
		}
	}

	marked := word
	if style.Mark != nil {
		marked = style.Mark(word)
	}

	lines := make([]string, len(windows))
	for i, w := range windows {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(w.Before))
		lines[i] = pad + w.Before + " " + marked + " " + w.After
	}
	lines[0] = style.BlockStart + lines[0]
	lines[len(lines)-1] += style.BlockEnd
	return strings.Join(lines, "\n")
}

// DisplayFor runs Find and renders the result with Display.
func DisplayFor(doc *document.Document, word string, size int, style Style) (string, error) {
	windows, err := Find(doc, word, size)
	if err != nil {
		return "", err
	}
	return Display(windows, word, style), nil
}
