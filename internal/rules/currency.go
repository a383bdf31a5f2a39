package rules

import (
	"strings"

	"github.com/nairkartik/shuddhi/internal/textutil"
)

// rupeeSymbol is the glyph emitted for all recognised currency markers.
const rupeeSymbol = "₹"

// FormatCurrency detects currency markers ("rs", "rupees", "inr" —
// case-insensitive, optional trailing period) next to a numeral and rewrites
// the pair as the rupee symbol followed by the amount in Indian digit
// grouping: the last three digits form one group and the remaining digits
// are grouped in pairs ("1234567" → "12,34,567"). Amounts of three or fewer
// integer digits are left ungrouped; a decimal part is carried over unsplit.
//
// Both "1200 rupees" and "rs 1200" orders are recognised; the marker word is
// consumed, and a sentence-final period on a trailing marker ("pay 500 rs.")
// is kept on the amount. Amounts already carrying the symbol are re-grouped
// in place. A marker with no adjacent numeral passes through unchanged.
func (s *Set) FormatCurrency(text string) string {
	tokens := textutil.Split(text)
	if len(tokens) == 0 {
		return text
	}

	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if s.isCurrencyMarker(tok) {
			// Spoken amounts usually put the marker after the number. A
			// period on a trailing marker ends the sentence, not the marker
			// ("pay 500 rs."), so it survives the rewrite; on a leading
			// marker ("Rs. 500") it is abbreviation punctuation and drops.
			if len(out) > 0 {
				if num, ok := parseNumeral(out[len(out)-1]); ok {
					amount := rupeeSymbol + groupIndian(num)
					if strings.HasSuffix(tok, ".") {
						amount += "."
					}
					out[len(out)-1] = amount
					continue
				}
			}
			if i+1 < len(tokens) {
				if num, ok := parseNumeral(tokens[i+1]); ok {
					out = append(out, rupeeSymbol+groupIndian(num))
					i++
					continue
				}
			}
			out = append(out, tok)
			continue
		}

		// A bare "₹" token followed by a numeral, or a numeral with the
		// symbol already attached: re-group either way.
		if tok == rupeeSymbol && i+1 < len(tokens) {
			if num, ok := parseNumeral(tokens[i+1]); ok {
				out = append(out, rupeeSymbol+groupIndian(num))
				i++
				continue
			}
		}
		if rest, found := strings.CutPrefix(tok, rupeeSymbol); found {
			if num, ok := parseNumeral(rest); ok {
				out = append(out, rupeeSymbol+groupIndian(num))
				continue
			}
		}

		out = append(out, tok)
	}
	return textutil.Join(out)
}

// isCurrencyMarker reports whether tok is a recognised currency word,
// ignoring case and at most one trailing period ("Rs." counts).
func (s *Set) isCurrencyMarker(tok string) bool {
	lower := strings.TrimSuffix(strings.ToLower(tok), ".")
	_, ok := s.markers[lower]
	return ok
}

// parseNumeral validates that tok is an amount — digits with optional comma
// separators and at most one decimal point — and returns it with the commas
// stripped. The leading character must be a digit.
func parseNumeral(tok string) (string, bool) {
	if tok == "" || tok[0] < '0' || tok[0] > '9' {
		return "", false
	}
	var b strings.Builder
	dots := 0
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
			// grouping separator, dropped
		case r == '.':
			dots++
			if dots > 1 {
				return "", false
			}
			b.WriteRune(r)
		default:
			return "", false
		}
	}
	return b.String(), true
}

// groupIndian formats num (digits with an optional "."-separated decimal
// part) using Indian digit grouping. The decimal part is reattached as-is.
func groupIndian(num string) string {
	intPart, decPart, hasDec := strings.Cut(num, ".")
	grouped := groupIntegerIndian(intPart)
	if hasDec {
		return grouped + "." + decPart
	}
	return grouped
}

// groupIntegerIndian inserts commas right to left: last three digits as one
// group, the rest in pairs. Three or fewer digits come back untouched.
func groupIntegerIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	groups := []string{digits[len(digits)-3:]}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",")
}
