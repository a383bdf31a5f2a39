// Package textutil provides the shared tokenization helpers used by every
// rewrite stage in the Shuddhi pipeline.
//
// Tokenization is deliberately simple: transcripts are split on Unicode
// whitespace and joined back with single spaces. Runs of consecutive
// whitespace in the input are therefore not reconstructed on join — this is
// an intentional lossy normalization shared by all stages, so repeated
// split/join round trips are stable.
package textutil

import (
	"strings"
	"unicode"
)

// Split breaks s into whitespace-delimited tokens. Empty and whitespace-only
// inputs yield an empty slice.
func Split(s string) []string {
	return strings.Fields(s)
}

// Join concatenates tokens into a single space-separated string.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// IsSingleLetter reports whether tok is exactly one alphabetic rune.
func IsSingleLetter(tok string) bool {
	runes := []rune(tok)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}

// IsAlpha reports whether tok is non-empty and consists only of letters.
func IsAlpha(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsTitle reports whether tok looks like a title-cased word: an uppercase
// first letter followed only by lowercase letters. Single uppercase letters
// count as title-cased, matching how ASR output renders initials.
func IsTitle(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Capitalize returns s with its first rune uppercased. Non-letter leading
// runes are left alone.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
