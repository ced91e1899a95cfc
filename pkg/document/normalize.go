package document

import "strings"

const (
	// StartMarker opens the book content in a Project Gutenberg file.
	StartMarker = "*** start of this project gutenberg ebook"
	// EndMarker closes the book content in a Project Gutenberg file.
	EndMarker = "*** end of this project gutenberg ebook"
	// Punctuation lists every character deleted by Normalize.
	Punctuation = `|;,.:?!"()[]{}/\-+`

	paragraphSep = "\n\n"
)

// Options controls clean mode. Markers are matched against lowercased
// paragraph starts, so they must be lowercase themselves.
type Options struct {
	StartMarker string
	EndMarker   string
	Punctuation string
}

// DefaultOptions returns the stock Project Gutenberg markers.
func DefaultOptions() Options {
	return Options{
		StartMarker: StartMarker,
		EndMarker:   EndMarker,
		Punctuation: Punctuation,
	}
}

// Normalize cleans a Project Gutenberg body with the default options.
func Normalize(raw string) string {
	return NormalizeWithOptions(raw, DefaultOptions())
}

// NormalizeWithOptions lowercases raw, drops the front and back matter
// around the start/end markers, folds each paragraph onto one line and
// deletes punctuation. It never fails: missing markers keep the whole body.
func NormalizeWithOptions(raw string, opts Options) string {
	blocks := strings.Split(strings.ToLower(raw), paragraphSep)
	blocks = dropHeader(blocks, opts.StartMarker)
	blocks = dropFooter(blocks, opts.EndMarker)

	remover := punctuationRemover(opts.Punctuation)

	var sb strings.Builder
	for _, block := range blocks {
		block = strings.Trim(block, "\n")
		if block == "" {
			continue
		}
		block = strings.ReplaceAll(block, "\n", " ")
		if remover != nil {
			block = remover.Replace(block)
		}
		sb.WriteString(block)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), " \t\n\r\v\f")
}

// dropHeader removes everything up to and including the first block that
// starts with marker.
func dropHeader(blocks []string, marker string) []string {
	if marker == "" {
		return blocks
	}
	for i, block := range blocks {
		if strings.HasPrefix(block, marker) {
			return blocks[i+1:]
		}
	}
	return blocks
}

// dropFooter removes the last block that starts with marker and everything
// after it.
func dropFooter(blocks []string, marker string) []string {
	if marker == "" {
		return blocks
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		if strings.HasPrefix(blocks[i], marker) {
			return blocks[:i]
		}
	}
	return blocks
}

func punctuationRemover(chars string) *strings.Replacer {
	if chars == "" {
		return nil
	}
	pairs := make([]string, 0, 2*len(chars))
	for _, r := range chars {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}
