package rules

import (
	"regexp"
	"strings"

	"github.com/nairkartik/shuddhi/internal/textutil"
)

// symbolSpaceRE matches optional whitespace around the characters that make
// up a spoken email address, so "john @ gmail . com" collapses cleanly.
var symbolSpaceRE = regexp.MustCompile(`\s*([@._-])\s*`)

// NormalizeEmail rewrites spoken or fragmented email addresses into their
// symbolic form. It applies, in order:
//
//  1. Spelled-letter collapse: runs of three or more consecutive
//     single-letter tokens join into one lowercase token
//     ("j o h n" → "john"). Shorter runs stay untouched — two adjacent
//     initials are more likely a name than a spelled word.
//  2. Symbol-word substitution: "at"/"at the rate" → "@", "dot"/"point"
//     → ".", "underscore" → "_", "dash"/"hyphen"/"minus" → "-",
//     "plus" → "+". Case-insensitive.
//  3. Whitespace collapse around "@", ".", "_" and "-".
//  4. TLD gluing: a known TLD welded directly onto a preceding
//     alphanumeric gets a "." inserted ("gmailcom" → "gmail.com").
//
// The result is not validated as an email address; partial input passes
// through with whatever substitutions matched.
func (s *Set) NormalizeEmail(text string) string {
	tokens := textutil.Split(text)
	if len(tokens) == 0 {
		return text
	}

	tokens = collapseSpelledLetters(tokens)
	tokens = s.substituteSymbolWords(tokens)

	out := textutil.Join(tokens)
	out = symbolSpaceRE.ReplaceAllString(out, "$1")
	out = s.tldRE.ReplaceAllString(out, "$1.$2")
	return out
}

// collapseSpelledLetters joins runs of three or more single-letter tokens
// into one lowercase token.
func collapseSpelledLetters(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		j := i
		for j < len(tokens) && textutil.IsSingleLetter(tokens[j]) {
			j++
		}
		switch {
		case j-i >= 3:
			out = append(out, strings.ToLower(strings.Join(tokens[i:j], "")))
			i = j
		case j > i:
			out = append(out, tokens[i:j]...)
			i = j
		default:
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

// substituteSymbolWords replaces recognised symbol words with their symbol.
// The three-token phrase "at the rate" is checked before the single-token
// table so it collapses to one "@" rather than "@ the rate".
func (s *Set) substituteSymbolWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		lower := strings.ToLower(tokens[i])
		if lower == "at" && i+2 < len(tokens) &&
			strings.EqualFold(tokens[i+1], "the") && strings.EqualFold(tokens[i+2], "rate") {
			out = append(out, "@")
			i += 2
			continue
		}
		if sym, ok := s.symbols[lower]; ok {
			out = append(out, sym)
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}
