package gofasta

import (
	"fmt"

	"github.com/nnnkkk7/gofasta/dnaformat"
	"github.com/nnnkkk7/gofasta/internal/inputsrc"
)

// Parser is the shared operation surface of FastaParser and FastqParser
// (spec §4.5/§9). Accessors panic if their gating Config flag is clear;
// Quality/QualityOwned instead return (nil, false), since whether quality
// exists at all depends on the format, not just the Config.
type Parser interface {
	Format() Format
	Next() (Event, bool, error)

	Header() []byte
	HeaderOwned() []byte

	DNAString() []byte
	DNAStringOwned() []byte
	DNAColumnar() *dnaformat.ColumnarDNA
	DNAColumnarOwned() *dnaformat.ColumnarDNA
	DNAPacked() *dnaformat.PackedDNA
	DNAPackedOwned() *dnaformat.PackedDNA
	DNALen() int

	Quality() ([]byte, bool)
	QualityOwned() ([]byte, bool)

	ClearChunk()
	ClearRecord()
}

var (
	_ Parser = (*FastaParser)(nil)
	_ Parser = (*FastqParser)(nil)
)

// NewFastxParser sniffs src's first byte to choose between a FASTA and a
// FASTQ parser ('>' vs '@'), per spec §4.4.3. Any other leading byte (or
// an empty source) is a construction-time failure (ErrUnknownFormat),
// matching original_source/helicase's parser/fastx.rs dispatcher.
func NewFastxParser(src inputsrc.Source, cfg Config) (Parser, error) {
	b, err := src.FirstByte()
	if err != nil {
		if err == inputsrc.ErrEmpty {
			return nil, &ParseError{Kind: ErrUnknownFormat, Err: fmt.Errorf("empty input")}
		}
		return nil, &ParseError{Kind: ErrInputRead, Err: err}
	}
	switch b {
	case '>':
		return NewFastaParser(src, cfg)
	case '@':
		return NewFastqParser(src, cfg)
	default:
		return nil, &ParseError{Kind: ErrUnknownFormat, Err: fmt.Errorf("leading byte %q is neither '>' nor '@'", b)}
	}
}
