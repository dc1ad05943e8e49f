package dnaformat

import "testing"

func TestColumnarDNANewStartsEmpty(t *testing.T) {
	c := NewColumnarDNA()
	if c.Len() != 0 || !c.IsEmpty() {
		t.Fatalf("new ColumnarDNA should be empty")
	}
}

func TestColumnarDNAAppendSimple(t *testing.T) {
	c := NewColumnarDNA()
	c.AppendString("ACTG")
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	if got := c.String(); got != "ACTG" {
		t.Fatalf("String() = %q, want ACTG", got)
	}
}

func TestColumnarDNACrossBoundary(t *testing.T) {
	seq := make([]byte, 0, 65)
	for i := 0; i < 64; i++ {
		seq = append(seq, 'A')
	}
	seq = append(seq, 'C')
	c := NewColumnarDNA()
	c.AppendString(string(seq))
	if c.Len() != 65 {
		t.Fatalf("Len() = %d, want 65", c.Len())
	}
	if got := c.String(); got != string(seq) {
		t.Fatalf("String() = %q, want %q", got, string(seq))
	}
}

func TestColumnarDNACrossingAllOffsets(t *testing.T) {
	letters := "ACGT"
	for offset := 0; offset < 64; offset++ {
		c := NewColumnarDNA()
		for i := 0; i < offset; i++ {
			c.AppendBase('A')
		}
		var want []byte
		for i := 0; i < offset; i++ {
			want = append(want, 'A')
		}
		for size := 1; size < 10; size++ {
			ch := letters[size&3]
			c.AppendBase(ch)
			want = append(want, ch)
		}
		if got := c.String(); got != string(want) {
			t.Fatalf("offset %d: String() = %q, want %q", offset, got, string(want))
		}
	}
}

func TestColumnarDNAClear(t *testing.T) {
	c := NewColumnarDNA()
	c.AppendString("ACGT")
	c.Clear()
	if !c.IsEmpty() {
		t.Fatalf("expected empty after Clear")
	}
}
