// Package rules implements the rewrite stages that clean up noisy ASR
// transcripts: email reconstruction, spoken-number conversion, currency
// formatting, lexicon-based name correction, and punctuation repair.
//
// Every stage is a total function from string to string — stages never fail
// and never mutate their input. Ambiguous or partial input passes through
// with whatever rewrites matched; no stage validates that its output is
// well-formed (an email stage output need not be a valid address).
//
// All rule tables (number-word maps, TLD lists, symbol substitutions,
// interrogative words) are built once by [NewSet] and are immutable
// afterwards, so a [Set] is safe for concurrent use.
//
// Two rule profiles exist because production shipped two diverging rule
// tables and neither was ever declared canonical:
//
//   - [ProfileStandard] corrects only title-cased tokens against the name
//     lexicon and uses a threshold of 85.
//   - [ProfileLegacy] corrects any alphabetic token and uses a stricter
//     threshold of 88 to compensate.
//
// Downstream candidate generation also varies by profile (sort order and
// candidate cap); see the candidate package.
package rules

import (
	"regexp"

	"github.com/nairkartik/shuddhi/internal/fuzzy"
)

// Profile selects one of the two shipped rule-table variants.
type Profile string

const (
	// ProfileStandard is the default profile: title-case-only name
	// eligibility, name threshold 85.
	ProfileStandard Profile = "standard"

	// ProfileLegacy reproduces the older rule tables: any alphabetic token
	// is eligible for name correction, name threshold 88.
	ProfileLegacy Profile = "legacy"
)

// IsValid reports whether p is a recognised profile.
func (p Profile) IsValid() bool {
	return p == ProfileStandard || p == ProfileLegacy
}

const (
	standardNameThreshold = 85
	legacyNameThreshold   = 88
)

// Option is a functional option for configuring a [Set].
type Option func(*Set)

// WithMatcher attaches the fuzzy-similarity capability used by the name
// stage. When nil (the default), name correction is a no-op.
func WithMatcher(m fuzzy.Matcher) Option {
	return func(s *Set) {
		s.matcher = m
	}
}

// WithNameThreshold overrides the profile's minimum similarity score (0–100)
// a lexicon match must reach before a token is replaced.
func WithNameThreshold(threshold float64) Option {
	return func(s *Set) {
		s.nameThreshold = threshold
	}
}

// Set holds the immutable rule tables for one profile and exposes the five
// rewrite stages as methods. Construct with [NewSet]; safe for concurrent use.
type Set struct {
	profile       Profile
	matcher       fuzzy.Matcher
	nameThreshold float64
	titleCaseOnly bool

	units          map[string]int64
	multipliers    map[string]int64
	digits         map[string]string
	symbols        map[string]string
	markers        map[string]struct{}
	interrogatives map[string]struct{}

	tldRE *regexp.Regexp
}

// NewSet builds the rule tables for profile and applies opts. An invalid
// profile falls back to [ProfileStandard].
func NewSet(profile Profile, opts ...Option) *Set {
	if !profile.IsValid() {
		profile = ProfileStandard
	}

	s := &Set{
		profile:       profile,
		nameThreshold: standardNameThreshold,
		titleCaseOnly: true,

		units: map[string]int64{
			"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
			"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
			"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
			"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
			"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
			"forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
			"eighty": 80, "ninety": 90,
		},
		multipliers: map[string]int64{
			"hundred":  100,
			"thousand": 1_000,
			"lakh":     100_000,
			"crore":    10_000_000,
		},
		digits: map[string]string{
			"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
			"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
		},
		symbols: map[string]string{
			"at": "@", "dot": ".", "point": ".", "underscore": "_",
			"dash": "-", "hyphen": "-", "minus": "-", "plus": "+",
		},
		markers: map[string]struct{}{
			"rs": {}, "rupees": {}, "inr": {},
		},
		interrogatives: map[string]struct{}{
			"what": {}, "who": {}, "where": {}, "when": {}, "why": {},
			"how": {}, "is": {}, "can": {}, "do": {}, "are": {},
		},

		// Known TLDs that ASR tends to glue onto the domain ("gmailcom").
		// Longer alternatives first so "com" wins over "co".
		tldRE: regexp.MustCompile(`([a-zA-Z0-9])(com|net|org|gov|edu|co|in)\b`),
	}

	if profile == ProfileLegacy {
		s.titleCaseOnly = false
		s.nameThreshold = legacyNameThreshold
	}

	for _, o := range opts {
		o(s)
	}
	return s
}

// Profile returns the profile this set was built for.
func (s *Set) Profile() Profile {
	return s.profile
}
