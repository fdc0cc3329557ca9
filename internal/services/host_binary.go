package services

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// ErrInvalidRealSize is returned when the searchable size exceeds the available bytes
var ErrInvalidRealSize = errors.New("invalid searchable size")

// HostBinary is the read-only byte buffer scanned for candidate keys.
//
// The buffer holds RealSize bytes of the binary followed by KeySize zero bytes, so the
// window at the last searchable offset can be sliced without running off the end.
type HostBinary struct {
	data     []byte
	realSize int
}

// NewHostBinary copies the first realSize bytes of raw into a zero-padded buffer
func NewHostBinary(raw []byte, realSize int) (*HostBinary, error) {
	if realSize < 0 || realSize > len(raw) {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrInvalidRealSize, realSize, len(raw))
	}
	data := make([]byte, realSize+types.KeySize)
	copy(data, raw[:realSize])
	return &HostBinary{data: data, realSize: realSize}, nil
}

// LoadHostBinary reads the binary at path into a padded buffer covering the whole file
func LoadHostBinary(path string) (*HostBinary, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open host binary: %w", err)
	}
	defer r.Close()

	size := r.Len()
	data := make([]byte, size+types.KeySize)
	if _, err := r.ReadAt(data[:size], 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read host binary: %w", err)
	}
	return &HostBinary{data: data, realSize: size}, nil
}

// RealSize returns the number of searchable offsets
func (h *HostBinary) RealSize() int {
	return h.realSize
}

// Len returns the allocated length including padding
func (h *HostBinary) Len() int {
	return len(h.data)
}

// Window returns the KeySize-byte candidate starting at offset. The returned slice
// aliases the buffer and must not be modified.
func (h *HostBinary) Window(offset int) []byte {
	return h.data[offset : offset+types.KeySize]
}

// readFile maps path and returns a copy of its contents
func readFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}
