package zhconv

import "sort"

// RuleTable is the deduplicated source -> target phrase mapping compiled
// into one matcher for one stage. After the merge every source phrase
// maps to exactly one target; sources are held in sorted order so a
// table is a deterministic function of the store contents.
type RuleTable struct {
	Stage   StageID
	Scope   Scope
	sources []string
	targets []string // parallel to sources
}

// Len returns the number of distinct source phrases.
func (t *RuleTable) Len() int { return len(t.sources) }

// Lookup returns the target phrase for an exact source phrase.
func (t *RuleTable) Lookup(source string) (string, bool) {
	i := sort.SearchStrings(t.sources, source)
	if i < len(t.sources) && t.sources[i] == source {
		return t.targets[i], true
	}
	return "", false
}

// MergeTable folds the record groups feeding a (stage, scope) key into
// one deduplicated table, together with the store generation the table
// was built from.
//
// Group order is fixed: the stage's base group first, the regional scope
// group second, custom groups last in ascending priority (registration
// order breaking ties). Later groups win a duplicate source phrase;
// within one group the later record wins. The function is deterministic
// given the store contents and is called at most once per key and
// generation.
func (s *Store) MergeTable(stage StageID, scope Scope) (*RuleTable, uint64) {
	key := tableKey{stage: stage, scope: scope}
	gen := s.generation(key)

	s.mu.RLock()
	ordered := make([]*recordGroup, 0, 4)
	var custom []*recordGroup
	collect := func(k tableKey) {
		for _, g := range s.groups[k] {
			if g.custom {
				custom = append(custom, g)
			} else {
				ordered = append(ordered, g)
			}
		}
	}
	collect(tableKey{stage: stage, scope: ScopeBase})
	if scope != ScopeBase {
		collect(key)
	}
	sort.SliceStable(custom, func(i, j int) bool { return custom[i].priority < custom[j].priority })
	ordered = append(ordered, custom...)

	merged := make(map[string]string)
	for _, g := range ordered {
		for _, p := range g.pairs {
			merged[p.From] = p.To
		}
	}
	s.mu.RUnlock()

	t := &RuleTable{
		Stage:   stage,
		Scope:   scope,
		sources: make([]string, 0, len(merged)),
		targets: make([]string, 0, len(merged)),
	}
	for from := range merged {
		t.sources = append(t.sources, from)
	}
	sort.Strings(t.sources)
	for _, from := range t.sources {
		t.targets = append(t.targets, merged[from])
	}
	return t, gen
}
