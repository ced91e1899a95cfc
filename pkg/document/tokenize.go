package document

import "strings"

// Tokenize splits body into lines and each line into whitespace separated
// tokens. Lines without tokens are kept as empty slices so line indexes
// stay aligned with the body.
func Tokenize(body string) [][]string {
	rawLines := strings.Split(body, "\n")
	lines := make([][]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.Fields(line)
	}
	return lines
}
