package rules

import (
	"strconv"
	"strings"

	"github.com/nairkartik/shuddhi/internal/textutil"
)

// ConvertNumbers rewrites spoken number phrases into digit strings.
//
// Telephone-style idioms are expanded first: "double seven" → "77",
// "triple two" → "222", "oh"/"o" → "zero". Then each maximal run of number
// words is replaced in one of two ways:
//
//   - A run containing a magnitude word (hundred, thousand, lakh, crore) or
//     a unit of ten or more is parsed by magnitude accumulation:
//     "five lakh twenty thousand three hundred" → "520300".
//   - A run of only single-digit words (and digit strings produced by the
//     idiom pass) is concatenated positionally, the way phone numbers are
//     read out: "oh nine" → "09", "nine eight double seven" → "9877".
//
// The conjunction "and" inside a run is a no-op separator; trailing "and"s
// are left outside the run. Tokens the parser does not recognise pass
// through unchanged, and substitution never introduces double spaces.
func (s *Set) ConvertNumbers(text string) string {
	tokens := textutil.Split(text)
	if len(tokens) == 0 {
		return text
	}

	tokens = s.expandIdioms(tokens)

	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		run, consumed := s.scanNumberRun(tokens, i)
		if consumed == 0 {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, run)
		i += consumed
	}
	return textutil.Join(out)
}

// expandIdioms handles the compact spoken-digit idioms: "oh"/"o" become
// "zero", and "double X"/"triple X" (X a digit word) become the digit
// repeated two or three times.
func (s *Set) expandIdioms(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		lower := strings.ToLower(tokens[i])
		if lower == "oh" || lower == "o" {
			out = append(out, "zero")
			continue
		}
		if (lower == "double" || lower == "triple") && i+1 < len(tokens) {
			next := strings.ToLower(tokens[i+1])
			if next == "oh" || next == "o" {
				next = "zero"
			}
			if d, ok := s.digits[next]; ok {
				repeat := 2
				if lower == "triple" {
					repeat = 3
				}
				out = append(out, strings.Repeat(d, repeat))
				i++
				continue
			}
		}
		out = append(out, tokens[i])
	}
	return out
}

// scanNumberRun reads the maximal run of number tokens starting at start and
// returns its digit-string replacement plus the token count consumed.
// Returns ("", 0) when no run starts at start.
func (s *Set) scanNumberRun(tokens []string, start int) (string, int) {
	if !s.isNumberWord(tokens[start]) {
		return "", 0
	}

	end := start + 1
	for end < len(tokens) {
		lower := strings.ToLower(tokens[end])
		if lower == "and" || s.isNumberWord(tokens[end]) {
			end++
			continue
		}
		break
	}
	// Trailing "and"s belong to the surrounding sentence, not the number.
	for end > start && strings.EqualFold(tokens[end-1], "and") {
		end--
	}

	run := tokens[start:end]
	if s.isDigitSequence(run) {
		var b strings.Builder
		for _, tok := range run {
			lower := strings.ToLower(tok)
			if lower == "and" {
				continue
			}
			if d, ok := s.digits[lower]; ok {
				b.WriteString(d)
			} else {
				b.WriteString(tok)
			}
		}
		return b.String(), end - start
	}
	return strconv.FormatInt(s.accumulate(run), 10), end - start
}

// isNumberWord reports whether tok is a unit word, a magnitude word, or a
// bare digit string (the idiom pass emits those).
func (s *Set) isNumberWord(tok string) bool {
	lower := strings.ToLower(tok)
	if _, ok := s.units[lower]; ok {
		return true
	}
	if _, ok := s.multipliers[lower]; ok {
		return true
	}
	return isDigits(tok)
}

// isDigitSequence reports whether every token in run (ignoring "and") is a
// single-digit word or a digit string — a spoken digit sequence rather than
// a composed quantity.
func (s *Set) isDigitSequence(run []string) bool {
	for _, tok := range run {
		lower := strings.ToLower(tok)
		if lower == "and" || isDigits(tok) {
			continue
		}
		if _, ok := s.digits[lower]; !ok {
			return false
		}
	}
	return true
}

// accumulate parses a run of number words by magnitude accumulation.
// Units add into the working value; a magnitude word multiplies it, and
// magnitudes of a thousand or more flush the working value into the result
// so "five lakh twenty thousand three hundred" parses as 520300. A run that
// opens with a magnitude word starts from zero ("lakh" alone is 0).
func (s *Set) accumulate(run []string) int64 {
	var current, result int64
	for _, tok := range run {
		lower := strings.ToLower(tok)
		switch {
		case lower == "and":
			// separator, no value
		case isDigits(tok):
			if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
				current += v
			}
		default:
			if v, ok := s.units[lower]; ok {
				current += v
				continue
			}
			if m, ok := s.multipliers[lower]; ok {
				current *= m
				if m >= 1_000 {
					result += current
					current = 0
				}
			}
		}
	}
	return result + current
}

// isDigits reports whether tok is non-empty and all ASCII digits.
func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
