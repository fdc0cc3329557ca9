package services

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// ErrInvalidWorkerCount is returned when a search is configured with fewer than one worker
var ErrInvalidWorkerCount = errors.New("worker count must be greater than zero")

// FoundKey is a verified key and the host offset it was read from
type FoundKey struct {
	Key    [types.KeySize]byte
	Offset int
}

// SearchState is the mutable state shared by all workers of one search.
//
// The found key is published through a single atomic pointer: a non-nil pointer is the
// found flag, so the key is always fully written before any reader can see it.
type SearchState struct {
	iterations atomic.Uint64
	found      atomic.Pointer[FoundKey]
}

// NewSearchState returns an empty search state
func NewSearchState() *SearchState {
	return &SearchState{}
}

// AddIterations adds a batch of tested candidates to the shared counter
func (s *SearchState) AddIterations(n uint64) {
	s.iterations.Add(n)
}

// Iterations returns the number of candidates tested so far
func (s *SearchState) Iterations() uint64 {
	return s.iterations.Load()
}

// Found reports whether a key has been recorded
func (s *SearchState) Found() bool {
	return s.found.Load() != nil
}

// TryRecordKey records key as the result unless another worker got there first.
// It returns true for the single winning caller.
func (s *SearchState) TryRecordKey(key []byte, offset int) bool {
	if len(key) != types.KeySize {
		panic(fmt.Sprintf("invalid key length: %d != %d", len(key), types.KeySize))
	}
	fk := &FoundKey{Offset: offset}
	copy(fk.Key[:], key)
	return s.found.CompareAndSwap(nil, fk)
}

// FoundKey returns the recorded key, or nil if none was found
func (s *SearchState) FoundKey() *FoundKey {
	return s.found.Load()
}

// Chunk is a contiguous range of candidate offsets [Start, End) assigned to one worker
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of offsets in the chunk
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Partition splits [0, realSize) into workers contiguous chunks of realSize/workers offsets.
// The last chunk also takes the realSize%workers remainder so every offset is covered.
func Partition(realSize, workers int) ([]Chunk, error) {
	if workers < 1 {
		return nil, ErrInvalidWorkerCount
	}
	if realSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRealSize, realSize)
	}

	size := realSize / workers
	chunks := make([]Chunk, workers)
	for i := range chunks {
		chunks[i] = Chunk{Index: i, Start: i * size, End: (i + 1) * size}
	}
	chunks[workers-1].End = realSize
	return chunks, nil
}
