// Package normalize canonicalizes user-supplied names before storage and comparison.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Matches any run of Unicode whitespace.
var whitespaceRe = regexp.MustCompile(`\s+`)

// TagName converts user input to the canonical tag name.
// The canonical name is the source of truth for tag uniqueness.
//
// Normalization rules:
//  1. Unicode NFC composition
//  2. Trim surrounding whitespace
//  3. Collapse inner whitespace runs to a single space
//
// Case is preserved.
//
// Examples:
//
//	"  Slow   Burn " → "Slow Burn"
//	"cafe\u0301"   → "caf\u00e9"
func TagName(input string) string {
	return Text(input)
}

// Text applies NFC composition and whitespace collapsing to free text
// such as collection names and todo titles.
func Text(input string) string {
	s := norm.NFC.String(input)
	s = strings.TrimSpace(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}
