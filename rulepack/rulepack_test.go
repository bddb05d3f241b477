package rulepack

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func pack(t *testing.T, records []Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
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

func TestRoundTrip(t *testing.T) {
	records := []Record{
		{Stage: "zh2Hant", Scope: "", Source: "机", Target: "機"},
		{Stage: "zh2Hant", Scope: "TW", Source: "计算机", Target: "電腦"},
		{Stage: "zh2Hans", Scope: "CN", Source: "軟體", Target: ""}, // empty target is legal
	}
	got, err := Decode(pack(t, records))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d mismatch: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestStreamingReader(t *testing.T) {
	blob := pack(t, []Record{
		{Stage: "s", Source: "a", Target: "b"},
		{Stage: "s", Source: "c", Target: "d"},
	})
	r, err := NewReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for {
		_, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		n++
	}
	if n != 2 || r.Count() != 2 {
		t.Fatalf("streamed %d records (Count=%d), want 2", n, r.Count())
	}
}

func TestWriterRejectsEmptySource(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Record{Stage: "s", Target: "x"}); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for empty source, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an xz stream at all")); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	blob := pack(t, []Record{{Stage: "s", Source: "abcdefghijklmnopqrstuvwxyz", Target: "x"}})
	if _, err := Decode(blob[:len(blob)-8]); err == nil {
		t.Fatalf("expected error for truncated stream")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("one"))
	b := Fingerprint([]byte("two"))
	if len(a) != 64 {
		t.Fatalf("fingerprint should be 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("different artifacts must not share a fingerprint")
	}
}
