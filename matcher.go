package zhconv

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher is the compiled multi-pattern structure for one merged rule
// table. It performs leftmost-longest lookup: scanning left to right,
// the longest source phrase starting at the current position wins.
//
// A Matcher is immutable after construction and safe to share by
// reference across concurrent readers.
type Matcher struct {
	automaton ahocorasick.AhoCorasick
	targets   []string
	patterns  int
}

// buildMatcher compiles a merged table. Construction cost is
// proportional to the total length of the source phrases; scan cost is
// paid per conversion call. Pattern boundaries are whole UTF-8 phrases,
// so a match can never split a multi-byte character.
func buildMatcher(t *RuleTable) *Matcher {
	m := &Matcher{patterns: t.Len()}
	if m.patterns == 0 {
		return m
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostLongestMatch,
		DFA:       true,
	})
	m.automaton = builder.Build(t.sources)
	m.targets = t.targets
	tracer().Debugf("matcher built for %s/%s: %d patterns", t.Stage, t.Scope, m.patterns)
	return m
}

// replaceAll runs one substitution pass: target phrases are spliced in
// at every leftmost-longest match and unmatched text is copied verbatim.
func (m *Matcher) replaceAll(text string) string {
	if m.patterns == 0 || text == "" {
		return text
	}
	matches := m.automaton.FindAll(text)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := range matches {
		s := matches[i].Start()
		// The automaton can emit a suffix match overlapping the previous
		// leftmost-longest match; text behind the cursor is already spliced.
		if s < last {
			continue
		}
		if s > last {
			b.WriteString(text[last:s])
		}
		b.WriteString(m.targets[matches[i].Pattern()])
		last = matches[i].End()
	}
	b.WriteString(text[last:])
	return b.String()
}

// countMatched sums the byte lengths of the source phrases a conversion
// pass would substitute. Script detection uses it as a distance score.
func (m *Matcher) countMatched(text string) int {
	if m.patterns == 0 || text == "" {
		return 0
	}
	n, last := 0, 0
	for _, match := range m.automaton.FindAll(text) {
		if match.Start() < last {
			continue
		}
		n += match.End() - match.Start()
		last = match.End()
	}
	return n
}
