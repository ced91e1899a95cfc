// Package source reads the text handed to pgalyzer, either from a file
// path or from stdin when the path is "-".
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/charmbracelet/log"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// gutenbergTag must appear in the first line of piped input.
const gutenbergTag = "Project Gutenberg"

var (
	ErrPathNotFound = errors.New("path does not exist")
	ErrNotGutenberg = errors.New("the file or content is not a Project Gutenberg text content file")
	ErrEmptyInput   = errors.New("no input on stdin")
)

// Input is text ready for the Normalizer. A file yields its full body;
// stdin yields the already-read first line plus the remaining stream.
type Input struct {
	Path  string
	body  string
	first string
	rest  io.Reader
}

// Open resolves path into an Input. stdin is only read when path is "-".
func Open(path string, stdin io.Reader) (*Input, error) {
	if path == Stdin {
		return fromStdin(stdin)
	}
	return fromFile(path)
}

func fromStdin(stdin io.Reader) (*Input, error) {
	reader := bufio.NewReader(stdin)
	first, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if first == "" {
		return nil, ErrEmptyInput
	}
	if !strings.Contains(first, gutenbergTag) {
		return nil, ErrNotGutenberg
	}
	log.Debugf("Reading Project Gutenberg text from stdin")
	return &Input{Path: Stdin, first: first, rest: reader}, nil
}

func fromFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("invalid value for file path %q: %w", path, ErrPathNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Debugf("Read %d bytes from %s", len(data), path)
	return &Input{Path: path, body: universalNewlines(string(data))}, nil
}

// universalNewlines turns \r\n and lone \r into \n.
func universalNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// IsStream reports whether the input came from stdin.
func (in *Input) IsStream() bool {
	return in.rest != nil
}

// Document normalizes the input into a Document. A stream Input can be
// turned into a Document only once.
func (in *Input) Document(clean bool, opts document.Options) (*document.Document, error) {
	if in.rest != nil {
		return document.FromStreamWithOptions(in.first, in.rest, clean, opts)
	}
	return document.LoadWithOptions(in.body, clean, opts), nil
}

// Load is Open followed by Document.
func Load(path string, stdin io.Reader, clean bool, opts document.Options) (*document.Document, error) {
	in, err := Open(path, stdin)
	if err != nil {
		return nil, err
	}
	return in.Document(clean, opts)
}
