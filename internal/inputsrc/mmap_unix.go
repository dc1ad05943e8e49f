//go:build unix

package inputsrc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapSource is a random-access source backed by a memory-mapped file. The
// mapping is held for the source's lifetime; Close unmaps it.
type MmapSource struct {
	*SliceSource
	f    *os.File
	data []byte // the raw mapping, for Munmap (SliceSource.data may be a zero-length reslice of it)
}

// NewMmapSource maps path into memory.
func NewMmapSource(path string) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputsrc: opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("inputsrc: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		f.Close()
		return &MmapSource{SliceSource: NewSliceSource(nil), f: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("inputsrc: mmap %s: %w", path, err)
	}
	return &MmapSource{SliceSource: NewSliceSource(data), f: f, data: data}, nil
}

func (m *MmapSource) Close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if cerr := m.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
