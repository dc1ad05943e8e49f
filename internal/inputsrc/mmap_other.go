//go:build !unix

package inputsrc

// MmapSource falls back to a full heap load on non-Unix targets, where
// golang.org/x/sys/unix's Mmap/Munmap are unavailable. The observable
// contract (random access, full buffer via Data) is identical; only the
// backing resource (a mapping vs. a heap allocation) differs.
type MmapSource struct {
	*RamFileSource
}

// NewMmapSource loads path fully into memory.
func NewMmapSource(path string) (*MmapSource, error) {
	rf, err := NewRamFileSource(path)
	if err != nil {
		return nil, err
	}
	return &MmapSource{RamFileSource: rf}, nil
}

func (m *MmapSource) Close() error { return nil }
