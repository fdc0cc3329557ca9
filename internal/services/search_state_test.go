package services

import (
	"sync"
	"testing"

	"github.com/deploymenttheory/go-pckbrute/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name     string
		realSize int
		workers  int
		expected []Chunk
	}{
		{
			name:     "single worker",
			realSize: 64,
			workers:  1,
			expected: []Chunk{{Index: 0, Start: 0, End: 64}},
		},
		{
			name:     "even split",
			realSize: 100,
			workers:  4,
			expected: []Chunk{
				{Index: 0, Start: 0, End: 25},
				{Index: 1, Start: 25, End: 50},
				{Index: 2, Start: 50, End: 75},
				{Index: 3, Start: 75, End: 100},
			},
		},
		{
			name:     "remainder goes to last chunk",
			realSize: 103,
			workers:  4,
			expected: []Chunk{
				{Index: 0, Start: 0, End: 25},
				{Index: 1, Start: 25, End: 50},
				{Index: 2, Start: 50, End: 75},
				{Index: 3, Start: 75, End: 103},
			},
		},
		{
			name:     "more workers than offsets",
			realSize: 2,
			workers:  3,
			expected: []Chunk{
				{Index: 0, Start: 0, End: 0},
				{Index: 1, Start: 0, End: 0},
				{Index: 2, Start: 0, End: 2},
			},
		},
		{
			name:     "empty range",
			realSize: 0,
			workers:  2,
			expected: []Chunk{
				{Index: 0, Start: 0, End: 0},
				{Index: 1, Start: 0, End: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Partition(tt.realSize, tt.workers)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, chunks)
		})
	}
}

func TestPartitionCoverage(t *testing.T) {
	for _, realSize := range []int{1, 7, 31, 64, 1000, 4097} {
		for workers := 1; workers <= 16; workers++ {
			chunks, err := Partition(realSize, workers)
			require.NoError(t, err)
			require.Len(t, chunks, workers)

			covered := make([]int, realSize)
			for i, c := range chunks {
				assert.GreaterOrEqual(t, c.Start, 0)
				assert.LessOrEqual(t, c.End, realSize)
				assert.LessOrEqual(t, c.Start, c.End)
				if i < workers-1 {
					assert.Equal(t, realSize/workers, c.Len())
					assert.Equal(t, i*(realSize/workers), c.Start)
				}
				for off := c.Start; off < c.End; off++ {
					covered[off]++
				}
			}

			// Every offset belongs to exactly one chunk, including the remainder bytes
			for off, n := range covered {
				if !assert.Equal(t, 1, n, "size %d workers %d offset %d", realSize, workers, off) {
					return
				}
			}
		}
	}
}

func TestPartitionInvalid(t *testing.T) {
	_, err := Partition(100, 0)
	assert.ErrorIs(t, err, ErrInvalidWorkerCount)

	_, err = Partition(100, -1)
	assert.ErrorIs(t, err, ErrInvalidWorkerCount)

	_, err = Partition(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidRealSize)
}

func TestSearchStateFirstWriterWins(t *testing.T) {
	state := NewSearchState()
	assert.False(t, state.Found())
	assert.Nil(t, state.FoundKey())

	const writers = 32
	var (
		wg      sync.WaitGroup
		winners sync.Map
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := testutil.Key(byte(i))
			if state.TryRecordKey(key[:], i) {
				winners.Store(i, key)
			}
		}(i)
	}
	wg.Wait()

	count := 0
	winners.Range(func(k, v any) bool {
		count++
		fk := state.FoundKey()
		require.NotNil(t, fk)
		assert.Equal(t, k, fk.Offset)
		assert.Equal(t, v, fk.Key)
		return true
	})
	assert.Equal(t, 1, count)
	assert.True(t, state.Found())
}

func TestSearchStateIterations(t *testing.T) {
	state := NewSearchState()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				state.AddIterations(10)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(8000), state.Iterations())
}

func TestSearchStateRejectsShortKey(t *testing.T) {
	state := NewSearchState()
	assert.Panics(t, func() { state.TryRecordKey(make([]byte, 16), 0) })
	assert.False(t, state.Found())
}
