package lexer

import "testing"

func fillWindows(data []byte) [][64]byte {
	var out [][64]byte
	for i := 0; i < len(data); i += 64 {
		var w [64]byte
		copy(w[:], data[i:])
		out = append(out, w)
	}
	if len(out) == 0 {
		out = append(out, [64]byte{})
	}
	return out
}

func windowLen(data []byte, chunkIdx int) int {
	rem := len(data) - chunkIdx*64
	if rem > 64 {
		return 64
	}
	if rem < 0 {
		return 0
	}
	return rem
}

// headerMaskReference computes "this byte is >= a '>' and <= the next '\n'"
// per-byte over the whole buffer, the oracle named in testable property 6.
func headerMaskReference(data []byte) []bool {
	out := make([]bool, len(data))
	inHeader := false
	for i, b := range data {
		if b == '>' {
			inHeader = true
		}
		out[i] = inHeader
		if b == '\n' {
			inHeader = false
		}
	}
	return out
}

func TestFastaLexerCarryCorrectness(t *testing.T) {
	data := []byte(">head\nTTTCTtaAAAA\nAGAAAA\nACAA\n>hhh\nCTCTTANNAAA\nCAAAnAGCTTT\n")
	ref := headerMaskReference(data)

	l := NewFastaLexer(false, false, false)
	windows := fillWindows(data)
	for ci, w := range windows {
		n := windowLen(data, ci)
		chunk := l.Next(&w, n)
		for i := 0; i < n; i++ {
			globalPos := ci*64 + i
			got := chunk.HeaderMask&(1<<uint(i)) != 0
			if got != ref[globalPos] {
				t.Fatalf("byte %d (%q): header mask = %v, want %v", globalPos, string(data[globalPos]), got, ref[globalPos])
			}
		}
	}
}

func TestFastaLexerLongHeaderAcrossWindows(t *testing.T) {
	// S3: a 200-byte header split across 4 windows; the carry must thread
	// through all interior windows so header bytes are flagged throughout.
	header := make([]byte, 200)
	for i := range header {
		header[i] = byte('a' + i%26)
	}
	data := append([]byte(">"), header...)
	data = append(data, '\n')
	data = append(data, []byte("ACGT\n")...)

	l := NewFastaLexer(false, false, false)
	windows := fillWindows(data)
	var headerBytes int
	for ci, w := range windows {
		n := windowLen(data, ci)
		chunk := l.Next(&w, n)
		for i := 0; i < n; i++ {
			if chunk.HeaderMask&(1<<uint(i)) != 0 {
				headerBytes++
			}
		}
	}
	// header content is 1 ('>') + 200 bytes + the terminating '\n' = 202
	// flagged bytes: HeaderMask includes that newline (see headerMaskReference).
	if headerBytes != 202 {
		t.Fatalf("headerBytes = %d, want 202", headerBytes)
	}
}

func TestFastaLexerStringDebugRender(t *testing.T) {
	l := NewFastaLexer(true, false, false)
	var w [64]byte
	n := copy(w[:], ">h\nACN\n")
	chunk := l.Next(&w, n)
	got := chunk.String()
	want := ">> ..| "
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
