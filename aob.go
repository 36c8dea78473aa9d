package sigscan

import (
	"fmt"
	"strings"
)

// StringToPattern renders the bytes of searchStr as pattern text that Compile
// accepts, e.g. "We?" becomes "57 65 ??". Each '?' becomes a wildcard, and
// wildcards are appended until the pattern is minLength bytes long.
func StringToPattern(searchStr string, minLength int) string {
	if searchStr == "" {
		return ""
	}

	var builder strings.Builder
	bytes := []byte(searchStr)
	patternLength := max(len(bytes), minLength)

	for i := 0; i < patternLength; i++ {
		if i > 0 {
			builder.WriteString(" ")
		}

		switch {
		case i >= len(bytes), bytes[i] == '?':
			builder.WriteString("??")
		default:
			fmt.Fprintf(&builder, "%02X", bytes[i])
		}
	}

	return builder.String()
}
