package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/pgalyzer/pkg/document"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte("Hello World.\r\n\r\nSecond\rline"), 0644); err != nil {
		t.Fatal(err)
	}

	in, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if in.IsStream() {
		t.Error("file input reported as stream")
	}

	doc, err := in.Document(false, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Body() != "Hello World.\n\nSecond\nline" {
		t.Errorf("Body() = %q", doc.Body())
	}

	cleaned, err := Load(path, nil, true, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cleaned.Body() != "hello world\nsecond line" {
		t.Errorf("cleaned Body() = %q", cleaned.Body())
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), nil)
	if !errors.Is(err, ErrPathNotFound) {
		t.Errorf("err = %v, want ErrPathNotFound", err)
	}
}

func TestOpenStdin(t *testing.T) {
	stdin := strings.NewReader("The Project Gutenberg EBook of Lamb\r\nmary had\r\na lamb")
	in, err := Open(Stdin, stdin)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !in.IsStream() {
		t.Error("stdin input not reported as stream")
	}
	doc, err := in.Document(false, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	expected := "The Project Gutenberg EBook of Lamb\r\nmary had \na lamb"
	if doc.Body() != expected {
		t.Errorf("Body() = %q, want %q", doc.Body(), expected)
	}
}

func TestOpenStdinErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", ErrEmptyInput},
		{"not gutenberg", "Some other book\nbody", ErrNotGutenberg},
		{"tag on second line only", "title\nProject Gutenberg", ErrNotGutenberg},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Open(Stdin, strings.NewReader(tc.input))
			if !errors.Is(err, tc.expected) {
				t.Errorf("err = %v, want %v", err, tc.expected)
			}
		})
	}
}

func TestOpenStdinSingleLine(t *testing.T) {
	doc, err := Load(Stdin, strings.NewReader("Project Gutenberg only line"), false, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Body() != "Project Gutenberg only line" {
		t.Errorf("Body() = %q", doc.Body())
	}
}
