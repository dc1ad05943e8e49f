package gofasta

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by input sources and parsers.
var (
	// ErrInputOpen reports failure to open or map an input source.
	ErrInputOpen = errors.New("gofasta: failed to open input")

	// ErrInputRead reports failure reading or decompressing the underlying
	// byte stream. It is terminal: the core does not retry.
	ErrInputRead = errors.New("gofasta: failed to read input")

	// ErrUnknownFormat reports that the first byte of the stream is neither
	// '>' nor '@', so the fastx dispatcher cannot pick a parser.
	ErrUnknownFormat = errors.New("gofasta: input is neither FASTA nor FASTQ")

	// ErrBadConfig reports a Config that requests an internally
	// inconsistent combination of flags (see Config.Validate).
	ErrBadConfig = errors.New("gofasta: invalid parser configuration")

	// ErrQualityLengthMismatch reports, when COMPUTE_QUALITY is set, that a
	// FASTQ record's quality line length differs from its sequence length.
	ErrQualityLengthMismatch = errors.New("gofasta: quality length does not match sequence length")
)

// ParseError wraps a sentinel error with the byte offset in the input
// stream at which it occurred.
type ParseError struct {
	// Offset is the global byte offset at which the error was detected.
	Offset int64
	// Kind is one of the sentinel errors above; use errors.Is against it.
	Kind error
	// Err is the underlying error, if any (e.g. the I/O error that caused
	// ErrInputRead). May equal Kind.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil && e.Err != e.Kind {
		return fmt.Sprintf("gofasta: at offset %d: %v: %v", e.Offset, e.Kind, e.Err)
	}
	return fmt.Sprintf("gofasta: at offset %d: %v", e.Offset, e.Kind)
}

// Is reports a match against one of the sentinel errors above, even when
// Err also wraps an unrelated underlying cause (e.g. an I/O error) — so
// errors.Is(err, ErrBadConfig) still works when Err is set to a detail
// string rather than being nil.
func (e *ParseError) Is(target error) bool {
	return e.Kind == target
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// errMisuse formats the panic message for an accessor called without its
// gating Config flag enabled. This mirrors the original implementation's
// assert!-at-accessor behavior (ambient "MisuseBadConfig" contract in
// SPEC_FULL.md): a caller misconfiguration, not a data error, so it panics
// rather than returning an error.
func errMisuse(accessor, flag string) string {
	return fmt.Sprintf("gofasta: %s called without %s enabled in Config", accessor, flag)
}
