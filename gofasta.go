// Package gofasta parses FASTA and FASTQ sequence files at high
// throughput using a SIMD-driven byte classifier (internal/simdscan),
// feeding FASTA/FASTQ-specific lexers (internal/lexer) that turn
// classified windows into headers, DNA spans, and (for FASTQ) quality
// lines. See SPEC_FULL.md for the full module layout.
package gofasta

import (
	"github.com/nnnkkk7/gofasta/internal/inputsrc"
)

// FromSlice constructs a format-sniffing parser over an in-memory buffer,
// with random-access (zero-copy) accumulation.
func FromSlice(data []byte, cfg Config) (Parser, error) {
	return NewFastxParser(inputsrc.NewSliceSource(data), cfg)
}

// FromRamFile loads path fully into memory and constructs a
// format-sniffing parser with random-access accumulation.
func FromRamFile(path string, cfg Config) (Parser, error) {
	src, err := inputsrc.NewRamFileSource(path)
	if err != nil {
		return nil, wrapInputOpen(path, err)
	}
	return NewFastxParser(src, cfg)
}

// FromMmap memory-maps path (falling back to a full heap load on
// non-Unix targets) and constructs a format-sniffing parser with
// random-access accumulation.
func FromMmap(path string, cfg Config) (Parser, error) {
	src, err := inputsrc.NewMmapSource(path)
	if err != nil {
		return nil, wrapInputOpen(path, err)
	}
	return NewFastxParser(src, cfg)
}

// FromFile opens path for streaming, transparently decompressing gzip
// input, and constructs a format-sniffing parser. Streaming sources
// cannot offer zero-copy accumulation.
func FromFile(path string, cfg Config) (Parser, error) {
	src, err := inputsrc.NewFileStreamSource(path)
	if err != nil {
		return nil, wrapInputOpen(path, err)
	}
	return NewFastxParser(src, cfg)
}

// FromStdin wraps os.Stdin for streaming, transparently decompressing
// gzip input, and constructs a format-sniffing parser.
func FromStdin(cfg Config) (Parser, error) {
	src, err := inputsrc.NewStdinStreamSource()
	if err != nil {
		return nil, wrapInputOpen("<stdin>", err)
	}
	return NewFastxParser(src, cfg)
}

func wrapInputOpen(path string, err error) error {
	return &ParseError{Kind: ErrInputOpen, Err: err}
}
