package gofasta

import (
	"github.com/nnnkkk7/gofasta/dnaformat"
	"github.com/nnnkkk7/gofasta/internal/bitops"
	"github.com/nnnkkk7/gofasta/internal/inputsrc"
	"github.com/nnnkkk7/gofasta/internal/lexer"
)

// fastqRole identifies which of the four lines of a FASTQ record the
// parser is currently consuming (spec §4.4.2: record framing is
// positional, one role per line_count % 4).
type fastqRole int

const (
	roleHeader fastqRole = iota
	roleSeq
	rolePlus
	roleQual
)

// FastqParser drives the FASTQ line-positional state machine over a
// Source. Construct with NewFastqParser.
type FastqParser struct {
	src inputsrc.Source
	cfg Config
	lex *lexer.FastqLexer

	win     [64]byte
	winLen  int
	chunk   lexer.FastqChunk
	pos     int
	base    int64
	haveWin bool
	srcDone bool
	done    bool
	role    fastqRole
	pendErr error

	headerBuf       []byte
	headerRangeStart, headerRangeEnd int64
	headerFromRange bool

	dnaBuf        []byte
	dnaRangeStart, dnaRangeEnd int64
	dnaFromRange  bool
	columnar      *dnaformat.ColumnarDNA
	packed        *dnaformat.PackedDNA
	dnaLen        int
	seqLen        int // byte length of the current sequence line

	qualBuf       []byte
	qualRangeStart, qualRangeEnd int64
	qualFromRange bool
}

// NewFastqParser constructs a FASTQ parser over src with the given Config.
func NewFastqParser(src inputsrc.Source, cfg Config) (*FastqParser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &FastqParser{
		src:  src,
		cfg:  cfg,
		lex:  lexer.NewFastqLexer(cfg.Has(ComputeDNAColumn), cfg.Has(ComputeDNAPacked)),
		role: roleHeader,
	}
	if cfg.Has(ComputeDNAColumn) {
		p.columnar = dnaformat.NewColumnarDNA()
	}
	if cfg.Has(ComputeDNAPacked) {
		p.packed = dnaformat.NewPackedDNA()
	}
	return p, nil
}

func (p *FastqParser) Format() Format { return FormatFastq }

func (p *FastqParser) ensureWindow() bool {
	if p.haveWin && p.pos < p.winLen {
		return true
	}
	if p.srcDone {
		return false
	}
	win, n, ok, err := p.src.Next()
	if err != nil {
		p.pendErr = &ParseError{Offset: p.base + int64(p.winLen), Kind: ErrInputRead, Err: err}
		p.srcDone = true
		return false
	}
	if !ok {
		p.srcDone = true
		return false
	}
	if p.haveWin {
		p.base += int64(p.winLen)
	}
	p.win = win
	p.winLen = n
	p.chunk = p.lex.Next(&p.win, n)
	p.pos = 0
	p.haveWin = true
	return true
}

func (p *FastqParser) globalPos() int64 { return p.base + int64(p.pos) }

func (p *FastqParser) bitSet(mask uint64) bool {
	return mask&(uint64(1)<<uint(p.pos)) != 0
}

func (p *FastqParser) curByte() byte { return p.win[p.pos] }

func (p *FastqParser) advance() bool {
	p.pos++
	return p.ensureWindow()
}

func (p *FastqParser) consumeNewlineIfPresent() {
	if p.haveWin && p.pos < p.winLen && p.bitSet(p.chunk.LineFeeds) {
		p.advance()
	}
}

// scanToLineEnd advances p.pos to the line's terminating newline (or EOF),
// jumping straight to it per window via NextSetBit on LineFeeds instead of
// testing every byte. onSegment, if non-nil, is called once per contiguous
// in-window byte span consumed — [from, to) — so callers can bulk-copy or
// bulk-encode that span instead of handling it one byte at a time.
func (p *FastqParser) scanToLineEnd(onSegment func(from, to int)) {
	for {
		if !p.haveWin || p.pos >= p.winLen {
			if !p.ensureWindow() {
				return
			}
		}
		pos, ok := bitops.NextSetBit(p.chunk.LineFeeds, p.pos)
		if ok && pos < p.winLen {
			if onSegment != nil {
				onSegment(p.pos, pos)
			}
			p.pos = pos
			return
		}
		if onSegment != nil {
			onSegment(p.pos, p.winLen)
		}
		p.pos = p.winLen
	}
}

// Next advances the parser, returning the next Event. ok is false once the
// input is exhausted (not an error: spec S4).
func (p *FastqParser) Next() (Event, bool, error) {
	for {
		if p.pendErr != nil {
			err := p.pendErr
			p.pendErr = nil
			return Event{}, false, err
		}
		if p.done {
			return Event{}, false, nil
		}
		if !p.ensureWindow() {
			p.done = true
			continue
		}
		switch p.role {
		case roleHeader:
			if !p.cfg.Has(MergeRecords) {
				p.clearRecordAccumulators()
			}
			p.advance() // consume '@'
			p.consumeHeaderLine()
			p.role = roleSeq

		case roleSeq:
			p.consumeSeqLine()
			p.role = rolePlus
			if p.pendErr != nil {
				continue
			}
			if p.cfg.Has(ReturnDNAChunk) {
				return Event{Kind: EventDNAChunk, Offset: p.globalPos()}, true, nil
			}

		case rolePlus:
			p.advance() // consume '+'
			p.skipLine()
			p.role = roleQual

		case roleQual:
			err := p.consumeQualLine()
			p.role = roleHeader
			if p.pendErr != nil {
				continue
			}
			if err != nil {
				return Event{}, false, err
			}
			if p.cfg.Has(ReturnRecord) {
				return Event{Kind: EventRecord, Offset: p.globalPos()}, true, nil
			}
		}
	}
}

func (p *FastqParser) consumeHeaderLine() {
	start := p.globalPos()
	fromRange := p.cfg.Has(ComputeHeader) && p.src.RandomAccess() && !p.cfg.Has(MergeRecords)
	p.scanToLineEnd(func(from, to int) {
		if p.cfg.Has(ComputeHeader) && !fromRange {
			p.headerBuf = append(p.headerBuf, p.win[from:to]...)
		}
	})
	if p.cfg.Has(ComputeHeader) {
		if fromRange {
			p.headerRangeStart, p.headerRangeEnd = start, p.globalPos()
		}
		p.headerFromRange = fromRange
	}
	p.consumeNewlineIfPresent()
}

func (p *FastqParser) consumeSeqLine() {
	start := p.globalPos()
	fromRange := p.cfg.Has(ComputeDNAString) && p.src.RandomAccess() && !p.cfg.Has(MergeRecords)
	p.seqLen = 0
	wantEncode := p.cfg.Has(ComputeDNAColumn) || p.cfg.Has(ComputeDNAPacked)
	p.scanToLineEnd(func(from, to int) {
		n := to - from
		p.seqLen += n
		if p.cfg.Has(ComputeDNALen) {
			p.dnaLen += n
		}
		if p.cfg.Has(ComputeDNAString) && !fromRange {
			p.dnaBuf = append(p.dnaBuf, p.win[from:to]...)
		}
		if !wantEncode {
			return
		}
		isDNA := p.chunk.IsDNAMask
		for i := from; i < to; i++ {
			if isDNA&(uint64(1)<<uint(i)) == 0 {
				continue
			}
			b := p.win[i]
			if p.cfg.Has(ComputeDNAColumn) {
				p.columnar.AppendBase(b)
			}
			if p.cfg.Has(ComputeDNAPacked) {
				p.packed.AppendBase(b)
			}
		}
	})
	if p.cfg.Has(ComputeDNAString) {
		if fromRange {
			p.dnaRangeStart, p.dnaRangeEnd = start, p.globalPos()
		}
		p.dnaFromRange = fromRange
	}
	p.consumeNewlineIfPresent()
}

// skipLine consumes and discards the remainder of the separator ('+') line.
func (p *FastqParser) skipLine() {
	p.scanToLineEnd(nil)
	p.consumeNewlineIfPresent()
}

// consumeQualLine consumes the quality line, cross-checking its length
// against the sequence line's when COMPUTE_QUALITY is set (the lazy
// end-of-quality-line check resolved in SPEC_FULL.md).
func (p *FastqParser) consumeQualLine() error {
	start := p.globalPos()
	fromRange := p.cfg.Has(ComputeQuality) && p.src.RandomAccess() && !p.cfg.Has(MergeRecords)
	n := 0
	p.scanToLineEnd(func(from, to int) {
		if !p.cfg.Has(ComputeQuality) {
			return
		}
		n += to - from
		if !fromRange {
			p.qualBuf = append(p.qualBuf, p.win[from:to]...)
		}
	})
	end := p.globalPos()
	var mismatchErr error
	if p.cfg.Has(ComputeQuality) {
		if fromRange {
			p.qualRangeStart, p.qualRangeEnd = start, end
		}
		p.qualFromRange = fromRange
		if n != p.seqLen {
			mismatchErr = &ParseError{Offset: end, Kind: ErrQualityLengthMismatch}
		}
	}
	p.consumeNewlineIfPresent()
	return mismatchErr
}

func (p *FastqParser) clearRecordAccumulators() {
	if p.cfg.Has(ComputeHeader) {
		p.headerBuf = p.headerBuf[:0]
	}
	if p.cfg.Has(ComputeDNAString) {
		p.dnaBuf = p.dnaBuf[:0]
	}
	if p.cfg.Has(ComputeDNAColumn) {
		p.columnar.Clear()
	}
	if p.cfg.Has(ComputeDNAPacked) {
		p.packed.Clear()
	}
	if p.cfg.Has(ComputeDNALen) {
		p.dnaLen = 0
	}
	if p.cfg.Has(ComputeQuality) {
		p.qualBuf = p.qualBuf[:0]
	}
}

// ClearChunk clears the current DNA accumulator (FASTQ has no sub-record
// chunk concept, so this is equivalent to clearing the sequence alone).
func (p *FastqParser) ClearChunk() {
	if p.cfg.Has(ComputeDNAString) {
		p.dnaBuf = p.dnaBuf[:0]
	}
	if p.cfg.Has(ComputeDNAColumn) {
		p.columnar.Clear()
	}
	if p.cfg.Has(ComputeDNAPacked) {
		p.packed.Clear()
	}
	if p.cfg.Has(ComputeDNALen) {
		p.dnaLen = 0
	}
}

// ClearRecord clears every accumulator (MERGE_RECORDS).
func (p *FastqParser) ClearRecord() { p.clearRecordAccumulators() }

func (p *FastqParser) Header() []byte {
	if !p.cfg.Has(ComputeHeader) {
		panic(errMisuse("Header", "COMPUTE_HEADER"))
	}
	if p.headerFromRange {
		return p.src.Data()[p.headerRangeStart:p.headerRangeEnd]
	}
	return p.headerBuf
}

func (p *FastqParser) HeaderOwned() []byte {
	h := p.Header()
	out := make([]byte, len(h))
	copy(out, h)
	p.headerBuf = p.headerBuf[:0]
	p.headerFromRange = false
	return out
}

func (p *FastqParser) DNAString() []byte {
	if !p.cfg.Has(ComputeDNAString) {
		panic(errMisuse("DNAString", "COMPUTE_DNA_STRING"))
	}
	if p.dnaFromRange {
		return p.src.Data()[p.dnaRangeStart:p.dnaRangeEnd]
	}
	return p.dnaBuf
}

func (p *FastqParser) DNAStringOwned() []byte {
	s := p.DNAString()
	out := make([]byte, len(s))
	copy(out, s)
	p.dnaBuf = p.dnaBuf[:0]
	p.dnaFromRange = false
	return out
}

func (p *FastqParser) DNAColumnar() *dnaformat.ColumnarDNA {
	if !p.cfg.Has(ComputeDNAColumn) {
		panic(errMisuse("DNAColumnar", "COMPUTE_DNA_COLUMNAR"))
	}
	return p.columnar
}

func (p *FastqParser) DNAColumnarOwned() *dnaformat.ColumnarDNA {
	c := p.DNAColumnar()
	p.columnar = dnaformat.NewColumnarDNA()
	return c
}

func (p *FastqParser) DNAPacked() *dnaformat.PackedDNA {
	if !p.cfg.Has(ComputeDNAPacked) {
		panic(errMisuse("DNAPacked", "COMPUTE_DNA_PACKED"))
	}
	return p.packed
}

func (p *FastqParser) DNAPackedOwned() *dnaformat.PackedDNA {
	d := p.DNAPacked()
	p.packed = dnaformat.NewPackedDNA()
	return d
}

func (p *FastqParser) DNALen() int {
	if !p.cfg.Has(ComputeDNALen) {
		panic(errMisuse("DNALen", "COMPUTE_DNA_LEN"))
	}
	return p.dnaLen
}

// Quality returns the current record's quality bytes and true, or
// (nil, false) if COMPUTE_QUALITY was not requested.
func (p *FastqParser) Quality() ([]byte, bool) {
	if !p.cfg.Has(ComputeQuality) {
		return nil, false
	}
	if p.qualFromRange {
		return p.src.Data()[p.qualRangeStart:p.qualRangeEnd], true
	}
	return p.qualBuf, true
}

func (p *FastqParser) QualityOwned() ([]byte, bool) {
	q, ok := p.Quality()
	if !ok {
		return nil, false
	}
	out := make([]byte, len(q))
	copy(out, q)
	p.qualBuf = p.qualBuf[:0]
	p.qualFromRange = false
	return out, true
}
