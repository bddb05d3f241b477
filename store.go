package zhconv

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/zhconv/zhconv/rulepack"
)

// DefaultMaxSourceRunes is the longest source phrase accepted from a
// custom dictionary, counted in Unicode scalar values.
const DefaultMaxSourceRunes = 32

// RulePair is one source -> target phrase mapping.
type RulePair struct {
	From string
	To   string
}

// recordGroup is one ordered batch of phrase rules sharing a stage,
// scope and priority. Embedded groups carry priority 0; custom groups
// carry the caller's priority and merge after the embedded ones.
type recordGroup struct {
	stage    StageID
	scope    Scope
	priority int
	custom   bool
	pairs    []RulePair
}

type tableKey struct {
	stage StageID
	scope Scope
}

// Store holds the raw phrase-mapping record groups, keyed by stage and
// variant scope. Embedded groups are populated once from the rule pack
// and never change; RegisterRules appends custom groups and bumps the
// generation of every merge key the registration can affect.
//
// A Store is safe for concurrent use.
type Store struct {
	mu             sync.RWMutex
	groups         map[tableKey][]*recordGroup
	gens           map[tableKey]uint64
	maxSourceRunes int
}

// NewStore creates an empty store. Rules are added with RegisterRules;
// for the embedded tables use NewStoreFromBlob.
func NewStore() *Store {
	return &Store{
		groups:         make(map[tableKey][]*recordGroup),
		gens:           make(map[tableKey]uint64),
		maxSourceRunes: DefaultMaxSourceRunes,
	}
}

// NewStoreFromBlob decompresses and parses an xz-compressed rule pack
// into a populated store. A damaged compressed stream yields a
// DecompressionError, malformed record framing a TableParseError; on the
// embedded-data path both indicate a broken build artifact.
func NewStoreFromBlob(blob []byte) (*Store, error) {
	s := NewStore()
	r, err := rulepack.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, &DecompressionError{Err: err}
	}
	// One embedded group per (stage, scope), records in pack order.
	open := make(map[tableKey]*recordGroup)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, rulepack.ErrFormat) {
				return nil, &TableParseError{Record: r.Count() + 1, Message: err.Error(), Err: err}
			}
			return nil, &DecompressionError{Err: err}
		}
		key := tableKey{stage: StageID(rec.Stage), scope: Scope(rec.Scope)}
		g := open[key]
		if g == nil {
			g = &recordGroup{stage: key.stage, scope: key.scope}
			open[key] = g
			s.groups[key] = append(s.groups[key], g)
		}
		g.pairs = append(g.pairs, RulePair{From: rec.Source, To: rec.Target})
	}
	tracer().Infof("rule pack loaded: %d records in %d groups", r.Count(), len(open))
	return s, nil
}

// SetMaxSourceRunes adjusts the source-phrase length limit for custom
// rules. The embedded tables are not subject to the limit.
func (s *Store) SetMaxSourceRunes(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSourceRunes = n
}

// RegisterRules adds a custom record group for a stage and scope at the
// given priority. Within one merged table, custom groups apply after the
// embedded groups, in ascending priority, so a higher priority wins a
// source-phrase conflict.
//
// Every pair is validated: an empty source phrase, a source phrase
// longer than the configured maximum, or a source phrase already
// registered for the same key at the same priority yields an
// InvalidCustomRuleError and the whole batch is rejected.
func (s *Store) RegisterRules(stage StageID, scope Scope, priority int, pairs []RulePair) error {
	if len(pairs) == 0 {
		return &InvalidCustomRuleError{Reason: "empty rule batch"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tableKey{stage: stage, scope: scope}
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if p.From == "" {
			return &InvalidCustomRuleError{Reason: "empty source phrase"}
		}
		if n := utf8.RuneCountInString(p.From); n > s.maxSourceRunes {
			return &InvalidCustomRuleError{Source: p.From, Reason: "source phrase too long"}
		}
		if seen[p.From] {
			return &InvalidCustomRuleError{Source: p.From, Reason: "duplicate source phrase in batch"}
		}
		seen[p.From] = true
	}
	for _, g := range s.groups[key] {
		if !g.custom || g.priority != priority {
			continue
		}
		for _, p := range g.pairs {
			if seen[p.From] {
				return &InvalidCustomRuleError{Source: p.From, Reason: "source phrase already registered at this priority"}
			}
		}
	}
	cp := make([]RulePair, len(pairs))
	copy(cp, pairs)
	s.groups[key] = append(s.groups[key], &recordGroup{
		stage:    stage,
		scope:    scope,
		priority: priority,
		custom:   true,
		pairs:    cp,
	})
	// A base-scope registration feeds every merged table of the stage,
	// so it must invalidate regional keys too; generation() folds the
	// base counter into every key of the stage.
	s.gens[key]++
	tracer().Debugf("registered %d custom rules for %s/%s at priority %d", len(pairs), stage, scope, priority)
	return nil
}

// generation returns the merge generation of a key. Cached tables and
// matchers record the generation they were built from; a mismatch on a
// later lookup forces a rebuild.
func (s *Store) generation(key tableKey) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gen := s.gens[key]
	if key.scope != ScopeBase {
		gen += s.gens[tableKey{stage: key.stage, scope: ScopeBase}]
	}
	return gen
}
