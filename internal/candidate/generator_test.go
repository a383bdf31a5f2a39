package candidate_test

import (
	"slices"
	"testing"

	"github.com/nairkartik/shuddhi/internal/candidate"
	"github.com/nairkartik/shuddhi/internal/fuzzy"
	"github.com/nairkartik/shuddhi/internal/rules"
)

// panicMatcher blows up on every lookup, standing in for a rule stage that
// hits an unexpected input.
type panicMatcher struct{}

func (panicMatcher) BestMatch(string, []string) (fuzzy.Match, bool) {
	panic("lookup exploded")
}

func newStandardGenerator(t *testing.T, opts ...candidate.Option) *candidate.Generator {
	t.Helper()
	rs := rules.NewSet(rules.ProfileStandard, rules.WithMatcher(fuzzy.NewRatioMatcher()))
	return candidate.NewGenerator(rs, []string{"Priya", "Rahul"}, opts...)
}

func TestGenerate_ContainsOriginal(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t)
	inputs := []string{
		"send five lakh rupees to Priyaa",
		"j o h n at gmail dot com",
		"where is the meeting",
		"plain text with nothing to fix",
	}
	for _, in := range inputs {
		got := g.Generate(in)
		if !slices.Contains(got, in) {
			t.Errorf("Generate(%q) = %v, missing the original input", in, got)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t)
	in := "pay rahul five lakh rupees tomorrow , ok"
	first := g.Generate(in)
	for range 5 {
		if again := g.Generate(in); !slices.Equal(again, first) {
			t.Fatalf("Generate not deterministic: %v vs %v", again, first)
		}
	}
}

func TestGenerate_BoundedAndUnique(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t)
	got := g.Generate("transfer five lakh twenty thousand rupees to Priyaa at gmail dot com now ok")

	if len(got) == 0 || len(got) > 8 {
		t.Fatalf("Generate returned %d candidates, want 1..8", len(got))
	}
	seen := make(map[string]struct{}, len(got))
	for _, c := range got {
		if _, dup := seen[c]; dup {
			t.Errorf("duplicate candidate %q", c)
		}
		seen[c] = struct{}{}
	}
}

func TestGenerate_DescendingLengthOrder(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t)
	got := g.Generate("send five lakh rupees to Priyaa")
	for i := 1; i < len(got); i++ {
		if len(got[i-1]) < len(got[i]) {
			t.Fatalf("candidates not in descending length order: %v", got)
		}
	}
}

func TestGenerate_LegacyOrderAndCap(t *testing.T) {
	t.Parallel()

	rs := rules.NewSet(rules.ProfileLegacy, rules.WithMatcher(fuzzy.NewRatioMatcher()))
	g := candidate.NewGenerator(rs, []string{"Priya"})
	in := "send five lakh rupees to priyaa today , please"
	got := g.Generate(in)

	if len(got) > 5 {
		t.Fatalf("legacy profile returned %d candidates, want at most 5", len(got))
	}
	// Ascending order holds everywhere except a final slot claimed by the
	// original-containment guarantee.
	for i := 1; i < len(got)-1; i++ {
		if len(got[i-1]) > len(got[i]) {
			t.Fatalf("legacy candidates not in ascending length order: %v", got)
		}
	}
	if !slices.Contains(got, in) {
		t.Errorf("legacy list %v missing the original input", got)
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t)
	got := g.Generate("")
	if !slices.Contains(got, "") {
		t.Fatalf("Generate(\"\") = %v, want the empty original included", got)
	}
}

func TestGenerate_PanickingStageDegrades(t *testing.T) {
	t.Parallel()

	rs := rules.NewSet(rules.ProfileStandard, rules.WithMatcher(panicMatcher{}))
	g := candidate.NewGenerator(rs, []string{"Priya"})
	in := "hello Priyaa"
	got := g.Generate(in)

	if len(got) == 0 {
		t.Fatal("Generate returned no candidates despite the degradation guarantee")
	}
	if !slices.Contains(got, in) {
		t.Errorf("Generate(%q) = %v, missing the original after a stage panic", in, got)
	}
}

func TestGenerate_MaxCandidatesOverride(t *testing.T) {
	t.Parallel()

	g := newStandardGenerator(t, candidate.WithMaxCandidates(2))
	in := "transfer five lakh rupees to Priyaa at gmail dot com"
	got := g.Generate(in)

	if len(got) > 2 {
		t.Fatalf("Generate returned %d candidates, want at most 2", len(got))
	}
	if !slices.Contains(got, in) {
		t.Errorf("capped list %v missing the original input", got)
	}
}
