// Package candidate composes the rewrite stages into named pipelines and
// assembles their outputs into a bounded, deduplicated candidate list for
// an external scorer to rank.
//
// One input string produces several variants: the untouched original, a
// best-effort chain applying every stage, and progressively more
// conservative fallbacks that omit the lower-confidence stages. Email and
// number normalization always run before name correction — digit and symbol
// substitution changes token boundaries that name detection depends on —
// and punctuation runs after content rewrites as the structural
// finalization step.
//
// Generation never fails: a rule stage that panics is degraded to a
// passthrough for that variant, so the worst-case output is the original
// input text, which is always present in the returned list.
package candidate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nairkartik/shuddhi/internal/observe"
	"github.com/nairkartik/shuddhi/internal/rules"
)

// Per-profile candidate caps. The legacy tables shipped with a tighter cap
// and ascending length order; standard keeps the wider, descending list.
const (
	standardMaxCandidates = 8
	legacyMaxCandidates   = 5
)

// Option is a functional option for configuring a [Generator].
type Option func(*Generator)

// WithMetrics attaches metric instruments. When nil (the default), nothing
// is recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithMaxCandidates overrides the profile's candidate cap. Values below 1
// are ignored.
func WithMaxCandidates(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxCandidates = n
		}
	}
}

// WithAscendingOrder overrides the profile's length-sort direction.
func WithAscendingOrder(ascending bool) Option {
	return func(g *Generator) {
		g.ascending = ascending
	}
}

// Generator produces correction candidates for noisy transcripts. It is
// immutable after construction and safe for concurrent use: generation is
// stateless per call and the lexicon is never mutated.
type Generator struct {
	rules         *rules.Set
	lexicon       []string
	maxCandidates int
	ascending     bool
	metrics       *observe.Metrics
}

// NewGenerator builds a [Generator] around the given rule set and name
// lexicon. The lexicon is borrowed read-only and must not be modified by
// the caller afterwards. Cap and sort order default from the rule set's
// profile.
func NewGenerator(rs *rules.Set, lexicon []string, opts ...Option) *Generator {
	g := &Generator{
		rules:         rs,
		lexicon:       lexicon,
		maxCandidates: standardMaxCandidates,
	}
	if rs.Profile() == rules.ProfileLegacy {
		g.maxCandidates = legacyMaxCandidates
		g.ascending = true
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns up to the configured cap of distinct correction
// candidates for text, sorted by length (direction per profile) with
// insertion order breaking ties. The original text is always an element of
// the result. Repeated calls with the same input return the same list.
func (g *Generator) Generate(text string) []string {
	start := time.Now()

	var order []string
	seen := make(map[string]struct{})
	add := func(c string) {
		// Empty variants carry no information unless the input itself
		// was empty.
		if c == "" && text != "" {
			return
		}
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		order = append(order, c)
	}

	add(text)

	// Best-effort chain, one candidate per stage boundary so the scorer
	// can back off to any prefix of the pipeline.
	c := g.apply("email", g.rules.NormalizeEmail, text)
	c = g.apply("number", g.rules.ConvertNumbers, c)
	add(c)
	c = g.apply("currency", g.rules.FormatCurrency, c)
	add(c)
	c = g.apply("punctuation", g.rules.Punctuate, c)
	add(c)
	add(g.apply("name", g.correctNames, c))

	// Conservative fallbacks: punctuation-only over the raw input, and a
	// number/currency chain that skips email and name rewrites.
	add(g.apply("punctuation", g.rules.Punctuate, text))
	v := g.apply("number", g.rules.ConvertNumbers, text)
	v = g.apply("currency", g.rules.FormatCurrency, v)
	add(g.apply("punctuation", g.rules.Punctuate, v))

	out := g.finalize(text, order)

	if g.metrics != nil {
		ctx := context.Background()
		g.metrics.GenerateDuration.Record(ctx, time.Since(start).Seconds())
		g.metrics.CandidatesProduced.Add(ctx, int64(len(out)))
	}
	return out
}

// correctNames adapts the name stage to the single-argument stage shape.
func (g *Generator) correctNames(text string) string {
	return g.rules.CorrectNames(text, g.lexicon)
}

// apply runs one rule stage, degrading a panic to a passthrough of the
// stage's input so one broken variant cannot abort the whole generation.
func (g *Generator) apply(name string, stage func(string) string, in string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = in
			slog.Warn("rule stage panicked; passing text through", "rule", name, "panic", r)
			if g.metrics != nil {
				g.metrics.RuleFailures.Add(context.Background(), 1,
					metric.WithAttributes(attribute.String("rule", name)))
			}
		}
	}()
	return stage(in)
}

// finalize sorts the deduplicated candidates by length (stable, so ties
// keep insertion order), caps the list, and guarantees the original text is
// present — when the cap squeezed it out, it replaces the last slot rather
// than being silently dropped.
func (g *Generator) finalize(text string, order []string) []string {
	sort.SliceStable(order, func(i, j int) bool {
		if g.ascending {
			return len(order[i]) < len(order[j])
		}
		return len(order[i]) > len(order[j])
	})

	if len(order) > g.maxCandidates {
		order = order[:g.maxCandidates]
	}

	for _, c := range order {
		if c == text {
			return order
		}
	}
	if len(order) == g.maxCandidates {
		order[len(order)-1] = text
	} else {
		order = append(order, text)
	}
	return order
}
