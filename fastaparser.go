package gofasta

import (
	"github.com/nnnkkk7/gofasta/dnaformat"
	"github.com/nnnkkk7/gofasta/internal/bitops"
	"github.com/nnnkkk7/gofasta/internal/inputsrc"
	"github.com/nnnkkk7/gofasta/internal/lexer"
)

// fastaState is the FASTA parser's state, named per spec §4.4.1.
type fastaState int

const (
	stateStart fastaState = iota
	stateRestart
	stateHeader
	stateStartDNA
	stateInDNABlock
	stateEndDNA
	stateDone
)

// FastaParser drives the FASTA state machine over a Source, populating
// per-record accumulators and yielding Events. Construct with
// NewFastaParser.
type FastaParser struct {
	src inputsrc.Source
	cfg Config
	lex *lexer.FastaLexer

	win      [64]byte
	winLen   int
	chunk    lexer.FastaChunk
	pos      int   // scan position within the current window, 0..winLen
	base     int64 // global offset of the current window's byte 0
	haveWin  bool
	srcDone  bool
	state    fastaState
	pendErr  error

	// header accumulator
	headerBuf        []byte
	headerRangeStart int64
	headerRangeEnd   int64
	headerFromRange  bool

	// DNA accumulators (current chunk, or current record if merging)
	dnaBuf          []byte
	dnaRangeStart   int64
	dnaRangeEnd     int64
	dnaFromRange    bool
	dnaContiguous   bool
	dnaHadFirstBrk  bool
	columnar        *dnaformat.ColumnarDNA
	packed          *dnaformat.PackedDNA
	dnaLen          int

	runStart int64 // global offset where the active DNA run began
}

// NewFastaParser constructs a FASTA parser over src with the given Config.
func NewFastaParser(src inputsrc.Source, cfg Config) (*FastaParser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &FastaParser{
		src:   src,
		cfg:   cfg,
		lex:   lexer.NewFastaLexer(cfg.Has(SplitNonACTG), cfg.Has(ComputeDNAColumn), cfg.Has(ComputeDNAPacked)),
		state: stateStart,
	}
	if cfg.Has(ComputeDNAColumn) {
		p.columnar = dnaformat.NewColumnarDNA()
	}
	if cfg.Has(ComputeDNAPacked) {
		p.packed = dnaformat.NewPackedDNA()
	}
	return p, nil
}

func (p *FastaParser) Format() Format { return FormatFasta }

// ensureWindow loads the next classified window if the current one is
// exhausted. Returns false once the source is exhausted.
func (p *FastaParser) ensureWindow() bool {
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

func (p *FastaParser) globalPos() int64 { return p.base + int64(p.pos) }

func (p *FastaParser) bitSet(mask uint64) bool {
	return mask&(uint64(1)<<uint(p.pos)) != 0
}

func (p *FastaParser) curByte() byte { return p.win[p.pos] }

// advance consumes the current byte and moves to the next, fetching a new
// window if needed.
func (p *FastaParser) advance() bool {
	p.pos++
	return p.ensureWindow()
}

// Next advances the parser, returning the next Event. ok is false once the
// input is exhausted (not an error: spec S4).
func (p *FastaParser) Next() (Event, bool, error) {
	for {
		if p.pendErr != nil {
			err := p.pendErr
			p.pendErr = nil
			return Event{}, false, err
		}
		switch p.state {
		case stateDone:
			return Event{}, false, nil

		case stateStart:
			if !p.ensureWindow() {
				p.state = stateDone
				continue
			}
			if !p.skipToHeaderStart() {
				p.state = stateDone
				continue
			}
			p.state = stateHeader
			p.beginHeader()

		case stateRestart:
			if !p.ensureWindow() {
				if p.pendErr != nil {
					continue
				}
				if p.cfg.Has(ReturnRecord) {
					p.state = stateDone
					return Event{Kind: EventRecord, Offset: p.globalPos()}, true, nil
				}
				p.state = stateDone
				continue
			}
			if p.bitSet(p.chunk.HeaderMask) {
				p.state = stateHeader
				p.beginHeader()
			} else if p.bitSet(p.chunk.IsDNAMask) {
				p.state = stateStartDNA
			} else {
				// newline or split byte between records: skip ahead.
				if !p.skipFillerBytes() {
					p.state = stateRestart
					continue
				}
			}

		case stateHeader:
			p.readHeader()
			p.state = stateStartDNA

		case stateStartDNA:
			if !p.cfg.Has(MergeDNAChunks) && !p.cfg.Has(MergeRecords) {
				p.clearChunkAccumulators()
			}
			p.runStart = p.globalPos()
			// The zero-copy range view is only valid for a single
			// unmerged span: once chunks or records are merged, the
			// accumulated value spans disjoint regions of the input
			// and must be materialized into dnaBuf instead.
			p.dnaContiguous = p.src.RandomAccess() && p.cfg.Has(ComputeDNAString) &&
				!p.cfg.Has(MergeDNAChunks) && !p.cfg.Has(MergeRecords)
			p.dnaHadFirstBrk = false
			p.state = stateInDNABlock

		case stateInDNABlock:
			ev, fired := p.consumeDNARun()
			if p.pendErr != nil {
				continue
			}
			p.state = stateEndDNA
			if fired {
				return ev, true, nil
			}

		case stateEndDNA:
			// Decide whether another DNA run follows (split mode with
			// more ACTG ahead) or we move on to the next record.
			if !p.ensureWindow() {
				p.state = stateRestart
				continue
			}
			switch {
			case p.bitSet(p.chunk.IsDNAMask):
				p.state = stateStartDNA
			case p.bitSet(p.chunk.HeaderMask):
				if p.cfg.Has(ReturnRecord) {
					off := p.globalPos()
					p.state = stateRestart
					return Event{Kind: EventRecord, Offset: off}, true, nil
				}
				p.state = stateRestart
			default:
				// newline or (non-split-mode) trailing byte: skip ahead.
				if !p.skipFillerBytes() {
					p.state = stateRestart
				}
			}
		}
	}
}

// skipToHeaderStart scans forward to the first '>' byte (Start state),
// jumping directly to it via NextSetBit instead of testing every byte.
func (p *FastaParser) skipToHeaderStart() bool {
	for {
		if pos, ok := bitops.NextSetBit(p.chunk.HeaderMask, p.pos); ok && pos < p.winLen {
			p.pos = pos
			return true
		}
		p.pos = p.winLen
		if !p.ensureWindow() {
			return false
		}
	}
}

// skipFillerBytes advances past bytes that are neither the start of a
// header nor DNA content (interior newlines, or split-mode non-ACTG bytes
// between runs), jumping straight to the next header or DNA byte via
// NextSetBit rather than re-testing the masks one byte at a time.
func (p *FastaParser) skipFillerBytes() bool {
	for {
		boundary := p.chunk.HeaderMask | p.chunk.IsDNAMask
		if pos, ok := bitops.NextSetBit(boundary, p.pos); ok && pos < p.winLen {
			p.pos = pos
			return true
		}
		p.pos = p.winLen
		if !p.ensureWindow() {
			return false
		}
	}
}

func (p *FastaParser) beginHeader() {
	if !p.cfg.Has(MergeRecords) {
		p.headerBuf = p.headerBuf[:0]
		p.clearChunkAccumulators()
	}
	if p.cfg.Has(ComputeHeader) {
		p.headerRangeStart = p.globalPos() + 1 // one past '>'
		p.headerFromRange = p.src.RandomAccess() && !p.cfg.Has(MergeRecords)
	}
	p.advance() // consume '>'
}

// readHeader scans to the header's terminating newline, accumulating header
// bytes as it goes. HeaderMask (internal/lexer/fasta.go) is 1 across the
// whole header including that newline, so the stopping condition is found
// via LineFeeds, not a byte clear in HeaderMask — jumping straight to it
// with NextSetBit rather than testing every byte.
func (p *FastaParser) readHeader() {
	for {
		if !p.haveWin || p.pos >= p.winLen {
			if !p.ensureWindow() {
				p.finishHeader()
				return
			}
		}
		nlPos, ok := bitops.NextSetBit(p.chunk.LineFeeds, p.pos)
		found := ok && nlPos < p.winLen
		end := p.winLen
		if found {
			end = nlPos
		}
		if p.cfg.Has(ComputeHeader) && !p.headerFromRange && end > p.pos {
			p.headerBuf = append(p.headerBuf, p.win[p.pos:end]...)
		}
		p.pos = end
		if found {
			break
		}
	}
	p.finishHeader()
}

// finishHeader records the header range end (excluding the terminating
// newline) and consumes that newline, if the current position is on it.
func (p *FastaParser) finishHeader() {
	if p.cfg.Has(ComputeHeader) {
		p.headerRangeEnd = p.globalPos()
	}
	if p.haveWin && p.pos < p.winLen && p.bitSet(p.chunk.LineFeeds) {
		p.advance()
	}
}

// consumeDNARun consumes one maximal run of DNA content starting at
// runStart (InDNABlock), stopping at the first header/split byte or EOF. It
// jumps to each window's run-ending boundary (header, or split-mode
// non-ACTG) via NextSetBit, then walks the interior newlines of that span
// via ConsumeLowestSet, bulk-handling the DNA content between them — rather
// than re-testing HeaderMask/SplitMask/LineFeeds/IsDNAMask one byte at a
// time. It returns a DnaChunk event if one should fire for this run.
func (p *FastaParser) consumeDNARun() (Event, bool) {
	split := p.cfg.Has(SplitNonACTG)
	for {
		if !p.haveWin || p.pos >= p.winLen {
			if !p.ensureWindow() {
				break
			}
		}
		stopMask := p.chunk.HeaderMask
		if split {
			stopMask |= p.chunk.SplitMask
		}
		end := p.winLen
		stopped := false
		if pos, ok := bitops.NextSetBit(stopMask, p.pos); ok && pos < p.winLen {
			end = pos
			stopped = true
		}
		p.consumeDNASpan(end)
		if stopped {
			goto runEnd
		}
	}
runEnd:
	p.finalizeDNARun()
	if p.cfg.Has(ReturnDNAChunk) {
		return Event{Kind: EventDNAChunk, Offset: p.globalPos()}, true
	}
	return Event{}, false
}

// consumeDNASpan consumes [p.pos, end) of the current window, which by
// construction contains only DNA bytes and interior newlines (the run's
// stop mask already excluded header/split bytes). It walks the embedded
// newlines via ConsumeLowestSet, calling crossNewlineInRun at each one and
// bulk-feeding the DNA bytes between them to consumeDNAByte.
func (p *FastaParser) consumeDNASpan(end int) {
	lf := p.chunk.LineFeeds & (^uint64(0) << uint(p.pos))
	if end < 64 {
		lf &^= ^uint64(0) << uint(end)
	}
	for {
		nlPos, rest, ok := bitops.ConsumeLowestSet(lf)
		if !ok {
			for i := p.pos; i < end; i++ {
				p.consumeDNAByte(p.win[i])
			}
			p.pos = end
			return
		}
		for i := p.pos; i < nlPos; i++ {
			p.consumeDNAByte(p.win[i])
		}
		p.pos = nlPos
		p.crossNewlineInRun()
		p.pos++
		lf = rest
	}
}

// crossNewlineInRun handles an interior newline within an active DNA run:
// it materializes the contiguous range accumulated so far (if any) the
// first time contiguity breaks, per the contiguous_dna invariant.
func (p *FastaParser) crossNewlineInRun() {
	if p.dnaContiguous && !p.dnaHadFirstBrk {
		data := p.src.Data()
		p.dnaBuf = append(p.dnaBuf, data[p.runStart:p.globalPos()]...)
		p.dnaHadFirstBrk = true
		p.dnaContiguous = false
	}
}

func (p *FastaParser) consumeDNAByte(b byte) {
	if p.cfg.Has(ComputeDNAColumn) {
		p.columnar.AppendBase(b)
	}
	if p.cfg.Has(ComputeDNAPacked) {
		p.packed.AppendBase(b)
	}
	if p.cfg.Has(ComputeDNALen) {
		p.dnaLen++
	}
	if p.cfg.Has(ComputeDNAString) && !p.dnaContiguous {
		p.dnaBuf = append(p.dnaBuf, b)
	}
}

func (p *FastaParser) finalizeDNARun() {
	if p.cfg.Has(ComputeDNAString) && p.dnaContiguous {
		p.dnaRangeStart = p.runStart
		p.dnaRangeEnd = p.globalPos()
		p.dnaFromRange = true
	} else {
		p.dnaFromRange = false
	}
}

func (p *FastaParser) clearChunkAccumulators() {
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

// ClearChunk clears the current DNA chunk accumulator (MERGE_DNA_CHUNKS).
func (p *FastaParser) ClearChunk() { p.clearChunkAccumulators() }

// ClearRecord clears header and DNA accumulators (MERGE_RECORDS).
func (p *FastaParser) ClearRecord() {
	p.headerBuf = p.headerBuf[:0]
	p.clearChunkAccumulators()
}

// Header returns the current record's header bytes. Panics if
// ComputeHeader is not set (MisuseBadConfig, spec §7).
func (p *FastaParser) Header() []byte {
	if !p.cfg.Has(ComputeHeader) {
		panic(errMisuse("Header", "COMPUTE_HEADER"))
	}
	if p.headerFromRange {
		return p.src.Data()[p.headerRangeStart:p.headerRangeEnd]
	}
	return p.headerBuf
}

// HeaderOwned returns a copy of the current header and resets the
// accumulator to empty.
func (p *FastaParser) HeaderOwned() []byte {
	h := p.Header()
	out := make([]byte, len(h))
	copy(out, h)
	p.headerBuf = p.headerBuf[:0]
	p.headerFromRange = false
	return out
}

// DNAString returns the current DNA chunk/record as a byte string.
func (p *FastaParser) DNAString() []byte {
	if !p.cfg.Has(ComputeDNAString) {
		panic(errMisuse("DNAString", "COMPUTE_DNA_STRING"))
	}
	if p.dnaFromRange {
		return p.src.Data()[p.dnaRangeStart:p.dnaRangeEnd]
	}
	return p.dnaBuf
}

// DNAStringOwned returns a copy and resets the accumulator.
func (p *FastaParser) DNAStringOwned() []byte {
	s := p.DNAString()
	out := make([]byte, len(s))
	copy(out, s)
	p.dnaBuf = p.dnaBuf[:0]
	p.dnaFromRange = false
	return out
}

func (p *FastaParser) DNAColumnar() *dnaformat.ColumnarDNA {
	if !p.cfg.Has(ComputeDNAColumn) {
		panic(errMisuse("DNAColumnar", "COMPUTE_DNA_COLUMNAR"))
	}
	return p.columnar
}

func (p *FastaParser) DNAColumnarOwned() *dnaformat.ColumnarDNA {
	c := p.DNAColumnar()
	out := c
	p.columnar = dnaformat.NewColumnarDNA()
	return out
}

func (p *FastaParser) DNAPacked() *dnaformat.PackedDNA {
	if !p.cfg.Has(ComputeDNAPacked) {
		panic(errMisuse("DNAPacked", "COMPUTE_DNA_PACKED"))
	}
	return p.packed
}

func (p *FastaParser) DNAPackedOwned() *dnaformat.PackedDNA {
	d := p.DNAPacked()
	out := d
	p.packed = dnaformat.NewPackedDNA()
	return out
}

func (p *FastaParser) DNALen() int {
	if !p.cfg.Has(ComputeDNALen) {
		panic(errMisuse("DNALen", "COMPUTE_DNA_LEN"))
	}
	return p.dnaLen
}

// Quality always returns (nil, false) for FASTA.
func (p *FastaParser) Quality() ([]byte, bool) { return nil, false }

// QualityOwned always returns (nil, false) for FASTA.
func (p *FastaParser) QualityOwned() ([]byte, bool) { return nil, false }
