package zhconv

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion core. Concrete error values wrap one
// of these, so callers can classify with errors.Is.
var (
	// ErrUnknownVariant indicates a variant identifier that does not
	// resolve to a known stage chain.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrDecompression indicates a corrupt or truncated rule blob.
	ErrDecompression = errors.New("rule blob decompression failed")
	// ErrTableParse indicates a malformed rule record stream.
	ErrTableParse = errors.New("malformed rule table")
	// ErrInvalidCustomRule indicates a bad user-supplied dictionary entry.
	ErrInvalidCustomRule = errors.New("invalid custom rule")
)

// UnknownVariantError reports an unresolvable variant identifier.
type UnknownVariantError struct {
	Name string // identifier as given by the caller
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant: %q", e.Name)
}

func (e *UnknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}

// DecompressionError reports a corrupt or truncated embedded rule blob.
// On the embedded-data path this is a build-artifact defect, not a
// runtime condition.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("rule blob decompression failed: %v", e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return ErrDecompression
}

// TableParseError reports a malformed record in a rule table stream.
type TableParseError struct {
	Record  int // index of the offending record, if known
	Message string
	Err     error
}

func (e *TableParseError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("malformed rule table: record %d: %s", e.Record, e.Message)
	}
	return fmt.Sprintf("malformed rule table: %s", e.Message)
}

func (e *TableParseError) Unwrap() error {
	return ErrTableParse
}

// InvalidCustomRuleError reports a rejected user-supplied dictionary
// entry. Errors of this kind are recoverable and returned to the caller.
type InvalidCustomRuleError struct {
	Source string // offending source phrase (may be empty)
	Reason string
}

func (e *InvalidCustomRuleError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid custom rule %q: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("invalid custom rule: %s", e.Reason)
}

func (e *InvalidCustomRuleError) Unwrap() error {
	return ErrInvalidCustomRule
}
