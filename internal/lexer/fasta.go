// Package lexer wraps the SIMD classifier with format-specific
// post-processing: for FASTA, carry-propagating the '>' mask through the
// "inside-header" region across chunk boundaries.
package lexer

import (
	"github.com/nnnkkk7/gofasta/internal/bitops"
	"github.com/nnnkkk7/gofasta/internal/simdscan"
)

// FastaChunk is one classified 64-byte window, ready for the parser state
// machine to scan.
type FastaChunk struct {
	Len         int
	HeaderMask  uint64 // 1 where the byte is inside a header, including both '>' and the terminating '\n'
	SplitMask   uint64 // 1 where the byte is non-newline, non-header, non-ACTG (only meaningful when splitting is enabled)
	IsDNAMask   uint64 // 1 where the byte is A/C/T/G, not header, not newline
	LineFeeds   uint64
	TwoBitsLo   uint64
	TwoBitsHi   uint64
	HighBit     uint64
	LowBit      uint64
}

// String renders an ASCII-art visualization of which mask bits are set per
// byte, for debugging: '>' header bytes, '.' DNA bytes, '|' split bytes,
// ' ' newlines, '?' everything else.
func (c FastaChunk) String() string {
	out := make([]byte, c.Len)
	for i := 0; i < c.Len; i++ {
		bit := uint64(1) << uint(i)
		switch {
		case c.LineFeeds&bit != 0:
			out[i] = ' '
		case c.HeaderMask&bit != 0:
			out[i] = '>'
		case c.IsDNAMask&bit != 0:
			out[i] = '.'
		case c.SplitMask&bit != 0:
			out[i] = '|'
		default:
			out[i] = '?'
		}
	}
	return string(out)
}

// FastaLexer threads the single bit of header-carry state across
// successive chunks.
type FastaLexer struct {
	carry    bitops.Carry
	split    bool
	columnar bool
	packed   bool
}

// NewFastaLexer constructs a lexer. split/columnar/packed mirror the
// corresponding Config flags and gate which optional fields get computed.
func NewFastaLexer(split, columnar, packed bool) *FastaLexer {
	return &FastaLexer{split: split, columnar: columnar, packed: packed}
}

// Next classifies one window into a FastaChunk, threading the header carry.
func (l *FastaLexer) Next(win *[64]byte, n int) FastaChunk {
	want := simdscan.Want{Columnar: l.columnar, Packed: l.packed}
	mask := simdscan.ExtractFasta(win, n, want)

	// Header-mask derivation (spec §4.3): S = addc(B, M, c_in),
	// header_mask = S XOR M, where B is the raw '>' mask and M = ¬N.
	nonNewline := ^mask.LineFeeds
	sum := l.carry.Add(mask.OpenBracket, nonNewline)
	header := sum ^ nonNewline

	isDNA := mask.ActgMask &^ header &^ mask.LineFeeds

	var split uint64
	if l.split {
		split = nonNewline &^ header &^ isDNA
	}

	return FastaChunk{
		Len:        n,
		HeaderMask: header,
		SplitMask:  split,
		IsDNAMask:  isDNA,
		LineFeeds:  mask.LineFeeds,
		TwoBitsLo:  mask.TwoBitsLo,
		TwoBitsHi:  mask.TwoBitsHi,
		HighBit:    mask.HighBit,
		LowBit:     mask.LowBit,
	}
}
