package gofasta

// Config is a bitflag word gating every optional computation and output of
// a parser. It plays the role that a const-generic type parameter plays in
// the original implementation this package is derived from: Go has no
// const generics, so the flag set is carried at runtime on every parser
// value instead of being monomorphized away at compile time. See
// ParserOptions for the conventional way to build one.
type Config uint64

// Flag bits recognized by the parsers. All optional work gated by a clear
// flag must be skipped, not merely computed and discarded.
const (
	ComputeHeader    Config = 1 << 0 // accumulate/range-record header bytes
	ComputeDNAString Config = 1 << 1 // accumulate/range-record DNA as bytes
	ComputeDNAColumn Config = 1 << 2 // accumulate DNA as two bit-planes
	ComputeDNAPacked Config = 1 << 3 // accumulate DNA as 2-bit-packed blocks
	ComputeDNALen    Config = 1 << 4 // maintain a length counter
	ComputeQuality   Config = 1 << 5 // accumulate quality bytes (FASTQ only)
	SplitNonACTG     Config = 1 << 6 // split DNA chunks at non-ACTG bytes
	ReturnRecord     Config = 1 << 7 // yield an event at each record boundary
	ReturnDNAChunk   Config = 1 << 8 // yield an event at each DNA chunk boundary
	MergeDNAChunks   Config = 1 << 9 // accumulate across non-ACTG bytes
	MergeRecords     Config = 1 << 10 // accumulate across record boundaries
)

// DefaultConfig computes headers and DNA as a byte string, and emits one
// Record event per record.
const DefaultConfig Config = ComputeHeader | ComputeDNAString | ReturnRecord

// Has reports whether every bit set in flag is also set in c.
func (c Config) Has(flag Config) bool {
	return c&flag == flag
}

// HasAny reports whether any bit of flag is set in c.
func (c Config) HasAny(flag Config) bool {
	return c&flag != 0
}

// wantsDNA reports whether any DNA representation is requested.
func (c Config) wantsDNA() bool {
	return c.HasAny(ComputeDNAString | ComputeDNAColumn | ComputeDNAPacked | ComputeDNALen)
}

// Validate reports ErrBadConfig if the flag combination is internally
// inconsistent (e.g. merging DNA chunks while also asking to split them
// into independent chunk events makes no sense together).
func (c Config) Validate() error {
	if c.Has(MergeDNAChunks) && c.Has(ReturnDNAChunk) {
		return &ParseError{Kind: ErrBadConfig, Err: errBadConfigDetail("MERGE_DNA_CHUNKS and RETURN_DNA_CHUNK are mutually exclusive")}
	}
	if (c.Has(ComputeDNAColumn) || c.Has(ComputeDNAPacked)) && !c.Has(SplitNonACTG) {
		return &ParseError{Kind: ErrBadConfig, Err: errBadConfigDetail("packed/columnar DNA representations require SPLIT_NON_ACTG")}
	}
	return nil
}

type errBadConfigDetail string

func (e errBadConfigDetail) Error() string { return string(e) }

// ParserOptions is a builder over Config, mirroring the preset-construction
// surface of the implementation this package is derived from
// (Default/IgnoreHeaders/DNAPacked/...): a fluent, chainable way to arrive
// at a coherent Config rather than hand-assembling bit literals.
type ParserOptions struct {
	config Config
}

// NewParserOptions returns the default configuration: compute headers and
// DNA as bytes, and emit a Record event per record.
func NewParserOptions() ParserOptions {
	return ParserOptions{config: DefaultConfig}
}

// ParserOptionsFrom loads an existing Config into a builder.
func ParserOptionsFrom(c Config) ParserOptions {
	return ParserOptions{config: c}
}

// Config returns the built configuration.
func (p ParserOptions) Config() Config { return p.config }

// ComputeHeaders enables header accumulation (default).
func (p ParserOptions) ComputeHeaders() ParserOptions {
	p.config |= ComputeHeader
	return p
}

// IgnoreHeaders disables header accumulation.
func (p ParserOptions) IgnoreHeaders() ParserOptions {
	p.config &^= ComputeHeader
	return p
}

// ComputeQuality enables quality-line accumulation (FASTQ only).
func (p ParserOptions) ComputeQuality() ParserOptions {
	p.config |= ComputeQuality
	return p
}

// IgnoreQuality disables quality-line accumulation (default).
func (p ParserOptions) IgnoreQuality() ParserOptions {
	p.config &^= ComputeQuality
	return p
}

// IgnoreDNA disables every DNA representation and chunk splitting.
func (p ParserOptions) IgnoreDNA() ParserOptions {
	p.config &^= ComputeDNAString | ComputeDNAColumn | ComputeDNAPacked | ComputeDNALen | SplitNonACTG | ReturnDNAChunk
	return p
}

// DNAString selects the byte-string DNA representation (default).
func (p ParserOptions) DNAString() ParserOptions {
	p.config = (p.config &^ (ComputeDNAColumn | ComputeDNAPacked | SplitNonACTG | ReturnDNAChunk)) | ComputeDNAString
	return p
}

// DNAPacked selects the 2-bit packed DNA representation. Implies
// SplitNonACTG and ReturnDNAChunk, since packed blocks never carry
// non-ACTG bytes.
func (p ParserOptions) DNAPacked() ParserOptions {
	p.config = (p.config &^ (ComputeDNAString | ComputeDNAColumn)) | ComputeDNAPacked | SplitNonACTG | ReturnDNAChunk
	return p
}

// DNAColumnar selects the two-bit-plane columnar DNA representation.
// Implies SplitNonACTG and ReturnDNAChunk.
func (p ParserOptions) DNAColumnar() ParserOptions {
	p.config = (p.config &^ (ComputeDNAString | ComputeDNAPacked)) | ComputeDNAColumn | SplitNonACTG | ReturnDNAChunk
	return p
}

// KeepNonACTG keeps non-ACTG bytes inline in the sequence (default with
// DNAString).
func (p ParserOptions) KeepNonACTG() ParserOptions {
	p.config &^= SplitNonACTG | ReturnDNAChunk | MergeDNAChunks
	return p
}

// SplitNonACTG splits DNA chunks at non-ACTG bytes, emitting a DnaChunk
// event per run of ACTG bytes (default with DNAPacked/DNAColumnar). Only
// the FASTA parser splits: the FASTQ parser emits one DnaChunk event per
// sequence line, its DNA string keeps any non-ACTG bytes, and only the
// line's ACTG bytes reach the packed/columnar forms.
func (p ParserOptions) SplitNonACTG() ParserOptions {
	p.config = (p.config &^ MergeDNAChunks) | SplitNonACTG | ReturnDNAChunk
	return p
}

// SkipNonACTGBases splits at non-ACTG bytes but merges the ACTG runs of one
// record into a single accumulated chunk instead of emitting one event per
// run.
func (p ParserOptions) SkipNonACTGBases() ParserOptions {
	p.config = (p.config &^ ReturnDNAChunk) | SplitNonACTG | MergeDNAChunks
	return p
}

// ReturnRecordEvents toggles whether the parser iterator stops after each
// record (true by default).
func (p ParserOptions) ReturnRecordEvents(enable bool) ParserOptions {
	if enable {
		p.config |= ReturnRecord
	} else {
		p.config &^= ReturnRecord
	}
	return p
}

// ReturnDNAChunkEvents toggles whether the parser iterator stops after
// each DNA chunk.
func (p ParserOptions) ReturnDNAChunkEvents(enable bool) ParserOptions {
	if enable {
		p.config |= ReturnDNAChunk
	} else {
		p.config &^= ReturnDNAChunk
	}
	return p
}
