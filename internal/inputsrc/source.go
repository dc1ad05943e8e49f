// Package inputsrc is the input abstraction: a uniform interface over
// in-memory slices, memory-mapped files, heap-loaded files, and streaming
// readers (with transparent decompression), differing in whether random
// access to the whole buffer is permitted. See spec §4.1.
package inputsrc

import "errors"

// CompressionFormat identifies the detected compression codec of a
// streaming source, if any.
type CompressionFormat int

const (
	CompressionNone CompressionFormat = iota
	CompressionGzip
)

func (c CompressionFormat) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	default:
		return "none"
	}
}

// ErrEmpty is returned by FirstByte when the source has no bytes at all.
var ErrEmpty = errors.New("inputsrc: empty input")

// Source produces a finite lazy sequence of 64-byte windows, zero-padded
// on the last partial window, plus the queries needed for format dispatch
// and (for random-access sources) zero-copy slicing.
//
// This is a simplified rendering of the original's InputData trait: it
// drops the separate grow_buffer/buffer/buffer_offset lookahead API, since
// this module's parsers never need to peek past the currently consumed
// window without accumulating it — every byte a parser visits while
// looking for a boundary is appended to the record's accumulator as it
// goes, so sequential consumption is sufficient to produce the same
// externally observable records. See DESIGN.md.
type Source interface {
	// RandomAccess reports whether Data returns the complete backing
	// buffer. When false, Data returns nil and every accumulator must
	// copy bytes out of successive windows.
	RandomAccess() bool

	// Data returns the complete backing buffer. Valid only when
	// RandomAccess is true.
	Data() []byte

	// Next returns the next 64-byte window. n is the number of genuine
	// bytes in win (win[n:64] is guaranteed zero); ok is false once the
	// stream is exhausted.
	Next() (win [64]byte, n int, ok bool, err error)

	// FirstByte returns the first byte of the uncompressed stream, used
	// for FASTA/FASTQ format dispatch, or ErrEmpty if there is none.
	FirstByte() (byte, error)

	// CompressionFormat reports the detected input compression. Always
	// CompressionNone for random-access sources.
	CompressionFormat() CompressionFormat

	// Close releases any held resource (mapping, file handle). Safe to
	// call on sources that hold none.
	Close() error
}
