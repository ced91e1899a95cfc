// Package utils holds small helpers shared by the pgalyzer adapters:
// TOML loading with partial recovery, filesystem checks, config path
// resolution and number formatting.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var sb strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}

// ParseIntArg parses s as an int no smaller than min. An empty s yields
// fallback.
func ParseIntArg(s string, fallback, min int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < min {
		return 0, fmt.Errorf("number %d is below %d", n, min)
	}
	return n, nil
}
