package zhconv

import (
	"sync"
	"sync/atomic"
)

// Converters owns the lazily built, shared conversion machinery for one
// rule store: merged tables and compiled matchers, cached per
// (stage, scope) key. Exactly one builder runs per key even under
// concurrent first access; once built, an artifact is immutable and read
// without locking. Registering custom rules bumps the store generation
// of the affected keys, and the next lookup rebuilds.
//
// The process-wide instance backed by the embedded tables is returned by
// Default; tests and embedders construct isolated instances.
type Converters struct {
	store    *Store
	resolver Resolver

	mu    sync.Mutex
	cells map[tableKey]*matcherCell
}

type matcherCell struct {
	mu    sync.Mutex // serializes builds for this key
	built atomic.Pointer[builtMatcher]
}

type builtMatcher struct {
	gen     uint64
	table   *RuleTable
	matcher *Matcher
}

// NewConverters creates a cache over a store. A nil resolver selects the
// built-in variant chains.
func NewConverters(store *Store, resolver Resolver) *Converters {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	return &Converters{
		store:    store,
		resolver: resolver,
		cells:    make(map[tableKey]*matcherCell),
	}
}

// Store returns the underlying rule record store.
func (c *Converters) Store() *Store { return c.store }

func (c *Converters) cell(key tableKey) *matcherCell {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl := c.cells[key]
	if cl == nil {
		cl = &matcherCell{}
		c.cells[key] = cl
	}
	return cl
}

// matcherFor returns the compiled matcher of a merge key, building and
// caching it on first use or after an invalidating registration.
func (c *Converters) matcherFor(key tableKey) *Matcher {
	cl := c.cell(key)
	gen := c.store.generation(key)
	if cur := cl.built.Load(); cur != nil && cur.gen == gen {
		return cur.matcher
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	gen = c.store.generation(key)
	if cur := cl.built.Load(); cur != nil && cur.gen == gen {
		return cur.matcher
	}
	table, tgen := c.store.MergeTable(key.stage, key.scope)
	built := &builtMatcher{gen: tgen, table: table, matcher: buildMatcher(table)}
	cl.built.Store(built)
	return built.matcher
}

// Convert converts text to the requested variant, resolving the
// variant's stage chain and folding the per-stage pass across it. The
// output is a deterministic function of the text, the rule tables and
// the context rules; absence of a match copies input through unchanged.
func (c *Converters) Convert(text string, variant Variant) (string, error) {
	conv, err := c.Converter(variant)
	if err != nil {
		return "", err
	}
	return conv.Convert(text), nil
}

// Converter resolves a variant into a ready-to-use converter holding the
// chain's compiled matchers. The returned value is a snapshot: it stays
// valid after later rule registrations but does not reflect them. Use
// Convert on the Converters cache to always observe the latest rules.
func (c *Converters) Converter(variant Variant) (*Converter, error) {
	chain, err := c.resolver.Chain(variant)
	if err != nil {
		return nil, err
	}
	conv := &Converter{variant: variant, stages: make([]stagePass, 0, len(chain))}
	for _, ref := range chain {
		conv.stages = append(conv.stages, stagePass{
			matcher: c.matcherFor(tableKey{stage: ref.Stage, scope: ref.Scope}),
			rules:   contextRulesFor(ref.Stage, ref.Scope),
		})
	}
	return conv, nil
}

// AddConvPairs registers custom phrase rules for a variant at the given
// priority. The rules land in the most specific stage of the variant's
// chain; any cached matcher the registration affects is rebuilt on the
// next conversion. Validation failures are returned as
// InvalidCustomRuleError and leave the store unchanged.
func (c *Converters) AddConvPairs(variant Variant, priority int, pairs ...RulePair) error {
	chain, err := c.resolver.Chain(variant)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return &InvalidCustomRuleError{Reason: "variant " + variant.String() + " has an empty stage chain"}
	}
	last := chain[len(chain)-1]
	return c.store.RegisterRules(last.Stage, last.Scope, priority, pairs)
}

// Converter applies one variant's stage chain. It is an immutable
// snapshot, safe for concurrent use.
type Converter struct {
	variant Variant
	stages  []stagePass
}

type stagePass struct {
	matcher *Matcher
	rules   []ContextRule
}

// Variant returns the conversion target.
func (cv *Converter) Variant() Variant { return cv.variant }

// Convert runs the stage chain over text, each stage's output feeding
// the next. Empty input yields empty output after zero stage work.
func (cv *Converter) Convert(text string) string {
	if text == "" {
		return ""
	}
	for _, st := range cv.stages {
		text = applyStage(text, st.matcher, st.rules)
	}
	return text
}

// CountMatched sums the byte lengths of the source phrases the chain's
// first stage would substitute in text. A high count means the text is
// far from the converter's target convention.
func (cv *Converter) CountMatched(text string) int {
	if len(cv.stages) == 0 {
		return 0
	}
	return cv.stages[0].matcher.countMatched(text)
}

// applyStage is one substitution pass: the literal leftmost-longest
// splice, then the stage's context rules in declared order.
func applyStage(text string, m *Matcher, rules []ContextRule) string {
	text = m.replaceAll(text)
	if len(rules) > 0 {
		text = applyContextRules(text, rules)
	}
	return text
}
