package zhconv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/zhconv/zhconv/rulepack"
)

// packBlob compresses records into a rule-pack blob the way the offline
// pipeline would.
func packBlob(t *testing.T, records []rulepack.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := rulepack.NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return buf.Bytes()
}

func TestStoreFromBlob(t *testing.T) {
	blob := packBlob(t, []rulepack.Record{
		{Stage: "zh2Hant", Scope: "", Source: "机", Target: "機"},
		{Stage: "zh2Hant", Scope: "TW", Source: "计算机", Target: "電腦"},
	})
	s, err := NewStoreFromBlob(blob)
	if err != nil {
		t.Fatalf("NewStoreFromBlob failed: %v", err)
	}
	table, _ := s.MergeTable(StageToHant, ScopeTW)
	if table.Len() != 2 {
		t.Fatalf("merged table should have 2 rules, has %d", table.Len())
	}
	if to, ok := table.Lookup("计算机"); !ok || to != "電腦" {
		t.Fatalf("lookup 计算机 = %q, %v", to, ok)
	}
}

func TestStoreFromCorruptBlob(t *testing.T) {
	_, err := NewStoreFromBlob([]byte("definitely not xz data"))
	if !errors.Is(err, ErrDecompression) {
		t.Fatalf("expected ErrDecompression for garbage input, got %v", err)
	}

	blob := packBlob(t, []rulepack.Record{
		{Stage: "zh2Hant", Scope: "", Source: strings.Repeat("机", 200), Target: "機"},
	})
	_, err = NewStoreFromBlob(blob[:len(blob)/2])
	if !errors.Is(err, ErrDecompression) {
		t.Fatalf("expected ErrDecompression for truncated input, got %v", err)
	}
}

func TestStoreFromMalformedRecord(t *testing.T) {
	// A record with an empty source phrase cannot be produced by the
	// pack writer, so frame it by hand.
	var raw []byte
	for _, f := range []string{"zh2Hant", "", "", "機"} {
		raw = binary.AppendUvarint(raw, uint64(len(f)))
		raw = append(raw, f...)
	}
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter failed: %v", err)
	}
	if _, err := xw.Write(raw); err != nil {
		t.Fatalf("xz write failed: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("xz close failed: %v", err)
	}
	_, err = NewStoreFromBlob(buf.Bytes())
	if !errors.Is(err, ErrTableParse) {
		t.Fatalf("expected ErrTableParse for empty source phrase, got %v", err)
	}
}

func TestRegisterRulesValidation(t *testing.T) {
	s := NewStore()
	cases := []struct {
		name  string
		pairs []RulePair
	}{
		{"empty batch", nil},
		{"empty source", []RulePair{{From: "", To: "x"}}},
		{"source too long", []RulePair{{From: strings.Repeat("长", DefaultMaxSourceRunes+1), To: "x"}}},
		{"duplicate in batch", []RulePair{{From: "软件", To: "軟體"}, {From: "软件", To: "軟件"}}},
	}
	for _, c := range cases {
		err := s.RegisterRules(StageToHant, ScopeTW, 1, c.pairs)
		if !errors.Is(err, ErrInvalidCustomRule) {
			t.Fatalf("%s: expected ErrInvalidCustomRule, got %v", c.name, err)
		}
	}
}

func TestRegisterRulesDuplicateAcrossBatches(t *testing.T) {
	s := NewStore()
	if err := s.RegisterRules(StageToHant, ScopeTW, 1, []RulePair{{From: "软件", To: "軟體"}}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := s.RegisterRules(StageToHant, ScopeTW, 1, []RulePair{{From: "软件", To: "軟件"}})
	if !errors.Is(err, ErrInvalidCustomRule) {
		t.Fatalf("expected ambiguity error for same source at same priority, got %v", err)
	}
	// A different priority resolves the ambiguity.
	if err := s.RegisterRules(StageToHant, ScopeTW, 2, []RulePair{{From: "软件", To: "軟件"}}); err != nil {
		t.Fatalf("registration at different priority failed: %v", err)
	}
}

func TestBaseRegistrationInvalidatesScopedKeys(t *testing.T) {
	s := NewStore()
	twKey := tableKey{stage: StageToHant, scope: ScopeTW}
	before := s.generation(twKey)
	if err := s.RegisterRules(StageToHant, ScopeBase, 1, []RulePair{{From: "机", To: "機"}}); err != nil {
		t.Fatalf("base registration failed: %v", err)
	}
	if after := s.generation(twKey); after == before {
		t.Fatalf("base-scope registration should bump the TW key generation")
	}
}
