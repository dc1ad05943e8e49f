package gofasta

import (
	"errors"
	"testing"

	"github.com/nnnkkk7/gofasta/internal/inputsrc"
)

type fastqRecord struct {
	header  string
	dna     string
	quality string
}

func drainFastqRecords(t *testing.T, data []byte, cfg Config) []fastqRecord {
	t.Helper()
	p, err := NewFastqParser(inputsrc.NewSliceSource(data), cfg)
	if err != nil {
		t.Fatalf("NewFastqParser: %v", err)
	}
	var out []fastqRecord
	var cur fastqRecord
	for {
		ev, ok, err := p.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		if ev.Kind == EventRecord {
			cur.header = string(p.Header())
			cur.dna = string(p.DNAString())
			if q, hasQ := p.Quality(); hasQ {
				cur.quality = string(q)
			}
			out = append(out, cur)
			cur = fastqRecord{}
		}
	}
	return out
}

const s2Stream = "@head\nTTTCTtaAAAAAGAAAAACAAN\n+\n123\n@hhh\nCTCTTANNAAACAAAnAGCTTT\n+\nQQ@@++AA\n@A B C \nCCAC\n+\nQUAL"

func TestFastqS2Default(t *testing.T) {
	cfg := NewParserOptions().ComputeQuality().Config()
	got := drainFastqRecords(t, []byte(s2Stream), cfg)
	want := []fastqRecord{
		{"head", "TTTCTtaAAAAAGAAAAACAAN", "123"},
		{"hhh", "CTCTTANNAAACAAAnAGCTTT", "QQ@@++AA"},
		{"A B C ", "CCAC", "QUAL"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFastqQualityLengthMismatch(t *testing.T) {
	cfg := NewParserOptions().ComputeQuality().Config()
	p, err := NewFastqParser(inputsrc.NewSliceSource([]byte("@h\nACGT\n+\nAB\n")), cfg)
	if err != nil {
		t.Fatalf("NewFastqParser: %v", err)
	}
	_, _, err = p.Next()
	if err == nil {
		t.Fatalf("expected ErrQualityLengthMismatch, got nil")
	}
	if !errors.Is(err, ErrQualityLengthMismatch) {
		t.Fatalf("err = %v, want ErrQualityLengthMismatch", err)
	}
}

func TestFastqQualityIgnoredWhenFlagClear(t *testing.T) {
	p, err := NewFastqParser(inputsrc.NewSliceSource([]byte("@h\nACGT\n+\nAB\n")), DefaultConfig)
	if err != nil {
		t.Fatalf("NewFastqParser: %v", err)
	}
	_, ok, err := p.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v (mismatched quality length should not be checked when COMPUTE_QUALITY is clear)", ok, err)
	}
	if _, hasQ := p.Quality(); hasQ {
		t.Fatalf("Quality() reported available without COMPUTE_QUALITY")
	}
}

func TestFastqS4EmptyStream(t *testing.T) {
	p, err := NewFastqParser(inputsrc.NewSliceSource(nil), DefaultConfig)
	if err != nil {
		t.Fatalf("NewFastqParser: %v", err)
	}
	_, ok, err := p.Next()
	if err != nil || ok {
		t.Fatalf("Next on empty stream = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestFastqMergeRecords(t *testing.T) {
	cfg := NewParserOptions().Config() | MergeRecords
	data := []byte("@a\nAC\n+\n\n@b\nGT\n+\n\n")
	p, err := NewFastqParser(inputsrc.NewSliceSource(data), cfg)
	if err != nil {
		t.Fatalf("NewFastqParser: %v", err)
	}
	var last string
	for {
		ev, ok, err := p.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		if ev.Kind == EventRecord {
			last = string(p.DNAString())
		}
	}
	if last != "ACGT" {
		t.Fatalf("merged dna = %q, want ACGT", last)
	}
}
