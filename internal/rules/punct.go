package rules

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nairkartik/shuddhi/internal/textutil"
)

var (
	// spaceBeforePunctRE matches whitespace sitting before a punctuation mark.
	spaceBeforePunctRE = regexp.MustCompile(`\s+([.,?!])`)

	// spaceAfterPunctRE matches ",", "?" or "!" welded to a following letter.
	spaceAfterPunctRE = regexp.MustCompile(`([,?!])(\p{L})`)

	// spaceAfterPeriodRE matches a period welded to a following uppercase
	// letter. Restricting to uppercase keeps email addresses and domain
	// names ("gmail.com") intact after the email stage has run.
	spaceAfterPeriodRE = regexp.MustCompile(`(\.)(\p{Lu})`)
)

// Punctuate normalizes punctuation spacing and guarantees sentence-final
// punctuation. In order it:
//
//  1. Removes whitespace before ".", ",", "?" and "!".
//  2. Collapses runs of two or more identical terminal marks ("really??"
//     → "really?"). Mixed runs like "?!" stay as they are.
//  3. Inserts a space after a punctuation mark glued to a letter.
//  4. Capitalizes the first letter of the string.
//  5. Appends terminal punctuation when missing: "?" when the leading word
//     is interrogative (what, who, where, when, why, how, is, can, do,
//     are), otherwise ".".
//
// Empty or whitespace-only input yields the empty string. Punctuate is
// idempotent: applying it twice equals applying it once.
func (s *Set) Punctuate(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	t := spaceBeforePunctRE.ReplaceAllString(text, "$1")
	t = collapseRepeatedMarks(t)
	t = spaceAfterPunctRE.ReplaceAllString(t, "$1 $2")
	t = spaceAfterPeriodRE.ReplaceAllString(t, "$1 $2")
	t = capitalizeFirstLetter(t)

	t = strings.TrimRightFunc(t, unicode.IsSpace)
	if !strings.HasSuffix(t, ".") && !strings.HasSuffix(t, "?") && !strings.HasSuffix(t, "!") {
		if s.isInterrogative(t) {
			t += "?"
		} else {
			t += "."
		}
	}
	return t
}

// isInterrogative reports whether the leading word of t (case-insensitive,
// punctuation stripped) is in the interrogative-word table.
func (s *Set) isInterrogative(t string) bool {
	fields := textutil.Split(t)
	if len(fields) == 0 {
		return false
	}
	lead := strings.ToLower(strings.Trim(fields[0], ".,?!"))
	_, ok := s.interrogatives[lead]
	return ok
}

// collapseRepeatedMarks reduces runs of identical ".", "?" or "!" to one.
func collapseRepeatedMarks(t string) string {
	var b strings.Builder
	b.Grow(len(t))
	var prev rune
	for _, r := range t {
		if r == prev && (r == '.' || r == '?' || r == '!') {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// capitalizeFirstLetter uppercases the first letter rune in t, skipping any
// leading non-letter characters (currency symbols, digits).
func capitalizeFirstLetter(t string) string {
	for i, r := range t {
		if unicode.IsLetter(r) {
			if unicode.IsUpper(r) {
				return t
			}
			return t[:i] + string(unicode.ToUpper(r)) + t[i+len(string(r)):]
		}
	}
	return t
}
