// Package fuzzy wraps string-similarity scoring behind an explicit
// found/not-found result so that callers of the name-correction stage can
// never forget to check whether a lexicon lookup actually produced a match.
//
// Scores are reported on a 0–100 scale: 100 is an exact (case-insensitive)
// match, 0 means no character overlap at all. The default implementation
// combines a normalized Levenshtein ratio with a Jaro-Winkler assist from
// github.com/antzucaro/matchr, which rewards shared prefixes — useful for
// names, where ASR errors cluster at word endings.
package fuzzy

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Match is a successful lexicon lookup.
type Match struct {
	// Entry is the reference string that matched, in its stored casing.
	Entry string

	// Score is the similarity between the query and Entry in [0, 100].
	Score float64
}

// Matcher finds the best-matching reference for a query token.
//
// Implementations must be safe for concurrent use.
type Matcher interface {
	// BestMatch returns the reference most similar to query and its score.
	// ok is false when references is empty or query is blank; in that case
	// the zero Match is returned.
	BestMatch(query string, references []string) (m Match, ok bool)
}

// Option is a functional option for configuring a [RatioMatcher].
type Option func(*RatioMatcher)

// WithJaroWinklerBoost toggles the Jaro-Winkler assist. When enabled (the
// default), the reported score is the maximum of the Levenshtein ratio and
// the Jaro-Winkler similarity scaled to 0–100.
func WithJaroWinklerBoost(enabled bool) Option {
	return func(m *RatioMatcher) {
		m.jwBoost = enabled
	}
}

// RatioMatcher is the default [Matcher]. It is read-only after construction
// and safe for concurrent use.
type RatioMatcher struct {
	jwBoost bool
}

var _ Matcher = (*RatioMatcher)(nil)

// NewRatioMatcher returns a [RatioMatcher] configured with the supplied
// options.
func NewRatioMatcher(opts ...Option) *RatioMatcher {
	m := &RatioMatcher{jwBoost: true}
	for _, o := range opts {
		o(m)
	}
	return m
}

// BestMatch scans references and returns the entry with the highest score.
// Comparison is case-insensitive; the returned Entry keeps the reference's
// stored casing. Ties keep the earlier reference, so lookup order is
// deterministic for a fixed lexicon.
func (m *RatioMatcher) BestMatch(query string, references []string) (Match, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(references) == 0 {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, ref := range references {
		r := strings.ToLower(strings.TrimSpace(ref))
		if r == "" {
			continue
		}
		score := ratio(q, r)
		if m.jwBoost {
			if jw := matchr.JaroWinkler(q, r, false) * 100; jw > score {
				score = jw
			}
		}
		if score > best.Score {
			best = Match{Entry: ref, Score: score}
		}
	}

	if best.Score < 0 {
		return Match{}, false
	}
	return best, true
}

// ratio is the normalized Levenshtein similarity between a and b on a 0–100
// scale: 100 * (1 - distance/maxLen).
func ratio(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}
	d := matchr.Levenshtein(a, b)
	return 100 * (1 - float64(d)/float64(maxLen))
}
