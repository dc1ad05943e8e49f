package inputsrc

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestSliceSourceWindows(t *testing.T) {
	data := bytes.Repeat([]byte("A"), 130)
	s := NewSliceSource(data)
	if !s.RandomAccess() {
		t.Fatalf("SliceSource must report RandomAccess")
	}
	if len(s.Data()) != 130 {
		t.Fatalf("Data() length = %d, want 130", len(s.Data()))
	}
	var total int
	for {
		win, n, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		total += n
		if n < 64 {
			for i := n; i < 64; i++ {
				if win[i] != 0 {
					t.Fatalf("tail byte %d not zero-padded", i)
				}
			}
		}
	}
	if total != 130 {
		t.Fatalf("total bytes read = %d, want 130", total)
	}
}

func TestSliceSourceFirstByte(t *testing.T) {
	s := NewSliceSource([]byte(">x"))
	b, err := s.FirstByte()
	if err != nil || b != '>' {
		t.Fatalf("FirstByte() = (%v,%v), want ('>',nil)", b, err)
	}

	empty := NewSliceSource(nil)
	if _, err := empty.FirstByte(); err != ErrEmpty {
		t.Fatalf("FirstByte() on empty = %v, want ErrEmpty", err)
	}
}

func TestReaderSourcePlain(t *testing.T) {
	data := []byte(">head\nACGT\n")
	s, err := NewReaderSource(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReaderSource: %v", err)
	}
	if s.RandomAccess() {
		t.Fatalf("ReaderSource must not report RandomAccess")
	}
	if s.CompressionFormat() != CompressionNone {
		t.Fatalf("expected no compression detected")
	}
	b, err := s.FirstByte()
	if err != nil || b != '>' {
		t.Fatalf("FirstByte() = (%v,%v)", b, err)
	}
	win, n, ok, err := s.Next()
	if err != nil || !ok || n != len(data) {
		t.Fatalf("Next() = (n=%d,ok=%v,err=%v), want (%d,true,nil)", n, ok, err, len(data))
	}
	if !bytes.Equal(win[:n], data) {
		t.Fatalf("window content mismatch")
	}
	_, _, ok, _ = s.Next()
	if ok {
		t.Fatalf("expected exhausted stream")
	}
}

func TestReaderSourceGzipDetection(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(">head\nACGT\n"))
	gz.Close()

	s, err := NewReaderSource(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReaderSource: %v", err)
	}
	if s.CompressionFormat() != CompressionGzip {
		t.Fatalf("expected gzip to be detected")
	}
	b, err := s.FirstByte()
	if err != nil || b != '>' {
		t.Fatalf("FirstByte() after decompression = (%v,%v)", b, err)
	}
}
