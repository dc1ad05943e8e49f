package inputsrc

import (
	"fmt"
	"os"
)

// FileStreamSource opens path and wraps it in a streaming ReaderSource
// (with transparent gzip detection), closing the file when the source is
// closed. This is the "FileInput" convenience wrapper of spec §4.1 — a
// thin layer over the generic streaming reader, not a random-access
// source; use NewMmapSource or NewRamFileSource for random access.
type FileStreamSource struct {
	*ReaderSource
	f *os.File
}

// NewFileStreamSource opens path for streaming.
func NewFileStreamSource(path string) (*FileStreamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputsrc: opening %s: %w", path, err)
	}
	rs, err := NewReaderSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileStreamSource{ReaderSource: rs, f: f}, nil
}

func (s *FileStreamSource) Close() error {
	err := s.ReaderSource.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewStdinStreamSource wraps os.Stdin in a streaming ReaderSource.
func NewStdinStreamSource() (*ReaderSource, error) {
	return NewReaderSource(os.Stdin)
}
