package zhconv

import "regexp"

// ContextRule is a pattern-based rewrite applied after a stage's literal
// substitution pass, for cases that need capture groups rather than
// fixed phrase equality. Rules are static per stage and carry a total
// order; each rule rewrites every non-overlapping leftmost match of its
// pattern, and the output of one rule feeds the next.
type ContextRule struct {
	Pattern  *regexp.Regexp
	Template string // $1-style capture references substituted verbatim
	Order    int
}

func applyContextRules(text string, rules []ContextRule) string {
	for _, r := range rules {
		text = r.Pattern.ReplaceAllString(text, r.Template)
	}
	return text
}

// Built-in context rules select the quotation-mark convention of the
// target region: Taiwan and Hong Kong text uses corner brackets where
// mainland text uses curly quotes. They run only after the literal pass
// has settled the vocabulary, never interleaved with it.
var (
	toCornerQuotes = []ContextRule{
		{Pattern: regexp.MustCompile(`“([^“”]*)”`), Template: "「$1」", Order: 1},
		{Pattern: regexp.MustCompile(`‘([^‘’]*)’`), Template: "『$1』", Order: 2},
	}
	toCurlyQuotes = []ContextRule{
		{Pattern: regexp.MustCompile(`「([^「」]*)」`), Template: "“$1”", Order: 1},
		{Pattern: regexp.MustCompile(`『([^『』]*)』`), Template: "‘$1’", Order: 2},
	}

	contextRuleTable = map[tableKey][]ContextRule{
		{stage: StageToHant, scope: ScopeTW}: toCornerQuotes,
		{stage: StageToHant, scope: ScopeHK}: toCornerQuotes,
		{stage: StageToHans, scope: ScopeCN}: toCurlyQuotes,
	}
)

// contextRulesFor returns the declared rules of a stage, already in
// application order. Stages without rules return nil.
func contextRulesFor(stage StageID, scope Scope) []ContextRule {
	return contextRuleTable[tableKey{stage: stage, scope: scope}]
}
