package rules

import (
	"strings"
	"unicode"

	"github.com/nairkartik/shuddhi/internal/textutil"
)

// CorrectNames replaces likely-misspelled personal names with their closest
// lexicon entry.
//
// Eligibility depends on the profile: [ProfileStandard] considers only
// title-cased tokens, which keeps common lowercase words out of the
// lexicon's reach; [ProfileLegacy] considers any alphabetic token.
// Sentence punctuation stuck to a token ("Ravi.") is split off before the
// check and reattached afterwards.
//
// An eligible token is replaced only when the matcher's score meets the
// configured threshold. The replacement keeps the original token's case
// style: a capitalized token yields the entry capitalized, anything else
// yields it lowercased.
//
// With no matcher configured or an empty lexicon, the text passes through
// unchanged.
func (s *Set) CorrectNames(text string, lexicon []string) string {
	if s.matcher == nil || len(lexicon) == 0 {
		return text
	}

	tokens := textutil.Split(text)
	if len(tokens) == 0 {
		return text
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		core, trailing := splitTrailingPunct(tok)
		if !s.nameEligible(core) {
			out[i] = tok
			continue
		}

		m, ok := s.matcher.BestMatch(core, lexicon)
		if !ok || m.Score < s.nameThreshold {
			out[i] = tok
			continue
		}

		corrected := strings.ToLower(m.Entry)
		if unicode.IsUpper([]rune(core)[0]) {
			corrected = textutil.Capitalize(corrected)
		}
		out[i] = corrected + trailing
	}
	return textutil.Join(out)
}

// nameEligible reports whether core may be checked against the lexicon.
func (s *Set) nameEligible(core string) bool {
	if s.titleCaseOnly {
		return textutil.IsTitle(core)
	}
	return textutil.IsAlpha(core)
}

// splitTrailingPunct separates a run of sentence punctuation from the end of
// tok so "Ravi." can match the lexicon without losing its period.
func splitTrailingPunct(tok string) (core, trailing string) {
	end := len(tok)
	for end > 0 {
		switch tok[end-1] {
		case '.', ',', '?', '!':
			end--
		default:
			return tok[:end], tok[end:]
		}
	}
	return "", tok
}
