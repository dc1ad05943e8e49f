package lexer

import "testing"

func TestFastqLexerNoHeaderCarry(t *testing.T) {
	l := NewFastqLexer(false, false)
	var w [64]byte
	n := copy(w[:], "@head\nACGT\n+\nIIII\n")
	chunk := l.Next(&w, n)
	if chunk.LineFeeds == 0 {
		t.Fatalf("expected newline bits set")
	}
	// Position 6 ('A') should be DNA.
	if chunk.IsDNAMask&(1<<6) == 0 {
		t.Fatalf("expected position 6 to be flagged DNA")
	}
	// Position 0 ('@') must not be flagged DNA (not ACTG).
	if chunk.IsDNAMask&1 != 0 {
		t.Fatalf("'@' must not be flagged DNA")
	}
}
