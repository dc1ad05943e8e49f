package lexer

import "github.com/nnnkkk7/gofasta/internal/simdscan"

// FastqChunk is one classified 64-byte window for the FASTQ lexer. Unlike
// FASTA, record framing is positional (every 4th line), so there is no
// header mask or carry here — the parser tracks the line role itself.
type FastqChunk struct {
	Len       int
	LineFeeds uint64
	IsDNAMask uint64 // ActgMask with newline positions cleared
	TwoBitsLo uint64
	TwoBitsHi uint64
	HighBit   uint64
	LowBit    uint64
}

// FastqLexer has no inter-chunk state: each window is classified in
// isolation.
type FastqLexer struct {
	columnar bool
	packed   bool
}

// NewFastqLexer constructs a lexer; columnar/packed mirror the
// corresponding Config flags.
func NewFastqLexer(columnar, packed bool) *FastqLexer {
	return &FastqLexer{columnar: columnar, packed: packed}
}

// Next classifies one window.
func (l *FastqLexer) Next(win *[64]byte, n int) FastqChunk {
	want := simdscan.Want{Columnar: l.columnar, Packed: l.packed}
	mask := simdscan.ExtractFastq(win, n, want)
	return FastqChunk{
		Len:       n,
		LineFeeds: mask.LineFeeds,
		IsDNAMask: mask.ActgMask &^ mask.LineFeeds,
		TwoBitsLo: mask.TwoBitsLo,
		TwoBitsHi: mask.TwoBitsHi,
		HighBit:   mask.HighBit,
		LowBit:    mask.LowBit,
	}
}
