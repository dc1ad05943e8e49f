package inputsrc

import (
	"fmt"
	"os"
)

// RamFileSource is a random-access source that heap-loads an entire file
// up front (no mapping), for filesystems where mmap is unavailable or
// undesirable.
type RamFileSource struct {
	*SliceSource
}

// NewRamFileSource reads path fully into memory. Errors are returned
// unwrapped; the public gofasta.FromRamFile constructor wraps them in
// gofasta.ErrInputOpen.
func NewRamFileSource(path string) (*RamFileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inputsrc: reading %s: %w", path, err)
	}
	return &RamFileSource{SliceSource: NewSliceSource(data)}, nil
}
