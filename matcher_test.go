package zhconv

import "testing"

func buildTestMatcher(t *testing.T, pairs ...RulePair) *Matcher {
	t.Helper()
	s := NewStore()
	if err := s.RegisterRules(StageToHant, ScopeBase, 1, pairs); err != nil {
		t.Fatalf("RegisterRules failed: %v", err)
	}
	table, _ := s.MergeTable(StageToHant, ScopeBase)
	return buildMatcher(table)
}

func TestReplaceAllSkipsOverlappingSuffixMatch(t *testing.T) {
	// The automaton reports 机 at [6,9) again after the phrase match
	// 计算机 at [0,9); the splice must consume the phrase once.
	m := buildTestMatcher(t,
		RulePair{From: "机", To: "機"},
		RulePair{From: "计", To: "計"},
		RulePair{From: "计算机", To: "電腦"},
	)
	if got := m.replaceAll("计算机"); got != "電腦" {
		t.Fatalf("计算机 should splice to 電腦, is %s", got)
	}
	if got := m.replaceAll("计算机和计算机"); got != "電腦和電腦" {
		t.Fatalf("repeated phrase splice wrong: %s", got)
	}
}

func TestCountMatchedIgnoresOverlap(t *testing.T) {
	m := buildTestMatcher(t,
		RulePair{From: "机", To: "機"},
		RulePair{From: "计算机", To: "電腦"},
	)
	// 计算机 is 9 bytes; a second overlapping 机 match must not count.
	if n := m.countMatched("计算机"); n != 9 {
		t.Fatalf("countMatched(计算机) = %d, want 9", n)
	}
	if n := m.countMatched("机计算机"); n != 12 {
		t.Fatalf("countMatched(机计算机) = %d, want 12", n)
	}
}
