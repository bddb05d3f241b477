/*
Package rulepack reads and writes the binary rule-pack format consumed by
the conversion engine.

A rule pack is an xz-compressed stream of records. Each record encodes
four UTF-8 fields (stage id, variant scope, source phrase, target phrase),
each prefixed by its byte length as an unsigned varint. There is no record
count header; the stream simply ends at the xz stream boundary. A BLAKE3
fingerprint of the compressed artifact accompanies it for build
reproducibility checks; the fingerprint is produced by the offline pack
pipeline and is not re-verified at load time.
*/
package rulepack

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Sentinel errors. Read errors wrap exactly one of these so callers can
// distinguish a broken compressed stream from malformed record framing.
var (
	// ErrCorrupt indicates the compressed stream itself is damaged or
	// truncated.
	ErrCorrupt = errors.New("rulepack: corrupt compressed stream")
	// ErrFormat indicates a well-decompressed but malformed record.
	ErrFormat = errors.New("rulepack: malformed record")
)

// maxFieldLen bounds a single field to keep a damaged length prefix from
// forcing a huge allocation.
const maxFieldLen = 1 << 20

// Record is one phrase-mapping entry of a rule pack.
type Record struct {
	Stage  string // stage id, e.g. "zh2Hant"
	Scope  string // variant scope tag; empty means the stage's base group
	Source string // source phrase, never empty
	Target string // target phrase, may be empty
}

// Reader streams records out of a compressed rule pack.
// Next returns io.EOF at a clean stream boundary.
type Reader struct {
	br  *bufio.Reader
	rec int // records delivered so far
}

// NewReader opens a compressed rule pack for reading.
func NewReader(r io.Reader) (*Reader, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &Reader{br: bufio.NewReader(xr)}, nil
}

// Next returns the next record. It returns io.EOF when the stream is
// exhausted; any mid-record end of input is reported as ErrFormat and a
// damaged compressed stream as ErrCorrupt.
func (r *Reader) Next() (Record, error) {
	var rec Record
	first := true
	for i, dst := range []*string{&rec.Stage, &rec.Scope, &rec.Source, &rec.Target} {
		field, err := r.readField()
		if err == io.EOF {
			if first {
				return rec, io.EOF // clean boundary before a record
			}
			return rec, r.formatErr("record truncated at field %d", i)
		}
		if err != nil {
			return rec, err
		}
		first = false
		*dst = field
	}
	r.rec++
	if rec.Source == "" {
		return rec, r.formatErr("empty source phrase")
	}
	return rec, nil
}

// Count returns the number of records delivered so far.
func (r *Reader) Count() int { return r.rec }

func (r *Reader) readField() (string, error) {
	n, err := binary.ReadUvarint(r.br)
	if err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if n > maxFieldLen {
		return "", r.formatErr("field length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return "", r.formatErr("field truncated")
		}
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !utf8.Valid(buf) {
		return "", r.formatErr("field is not valid UTF-8")
	}
	return string(buf), nil
}

func (r *Reader) formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: record %d: %s", ErrFormat, r.rec+1, fmt.Sprintf(format, args...))
}

// Decode reads all records of a compressed rule pack held in memory.
func Decode(blob []byte) ([]Record, error) {
	r, err := NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Writer produces a compressed rule pack. Close must be called to flush
// the xz stream footer.
type Writer struct {
	xw *xz.Writer
}

// NewWriter opens a rule pack for writing.
func NewWriter(w io.Writer) (*Writer, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Writer{xw: xw}, nil
}

// Write appends one record. Records with an empty source phrase are
// rejected before anything is written.
func (w *Writer) Write(rec Record) error {
	if rec.Source == "" {
		return fmt.Errorf("%w: empty source phrase", ErrFormat)
	}
	var buf []byte
	for _, f := range []string{rec.Stage, rec.Scope, rec.Source, rec.Target} {
		buf = binary.AppendUvarint(buf, uint64(len(f)))
		buf = append(buf, f...)
	}
	_, err := w.xw.Write(buf)
	return err
}

// Close finishes the compressed stream.
func (w *Writer) Close() error {
	return w.xw.Close()
}

// Fingerprint returns the lowercase hex BLAKE3 digest of a compressed
// rule-pack artifact.
func Fingerprint(blob []byte) string {
	sum := blake3.Sum256(blob)
	return hex.EncodeToString(sum[:])
}
