package gofasta

import (
	"errors"
	"testing"

	"github.com/nnnkkk7/gofasta/internal/inputsrc"
)

func TestFastxDispatchFasta(t *testing.T) {
	p, err := FromSlice([]byte(s1Stream), DefaultConfig)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if p.Format() != FormatFasta {
		t.Fatalf("Format() = %v, want fasta", p.Format())
	}
}

func TestFastxDispatchFastq(t *testing.T) {
	p, err := FromSlice([]byte(s2Stream), DefaultConfig)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if p.Format() != FormatFastq {
		t.Fatalf("Format() = %v, want fastq", p.Format())
	}
}

// S5: input beginning with neither '>' nor '@' fails construction.
func TestFastxS5UnknownFormat(t *testing.T) {
	_, err := FromSlice([]byte("not a sequence file"), DefaultConfig)
	if err == nil {
		t.Fatalf("expected ErrUnknownFormat, got nil")
	}
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestFastxS5EmptyInput(t *testing.T) {
	_, err := NewFastxParser(inputsrc.NewSliceSource(nil), DefaultConfig)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat (cannot dispatch with no bytes)", err)
	}
}

func TestFastxBadConfigRejected(t *testing.T) {
	bad := MergeDNAChunks | ReturnDNAChunk
	_, err := FromSlice([]byte(s1Stream), bad)
	if !errors.Is(err, ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
}
