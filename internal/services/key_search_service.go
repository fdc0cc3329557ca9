package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is how many candidates a worker tests between flushes of its local
// counter. The found flag and cancellation are only polled at these boundaries.
const DefaultBatchSize = 10_000

// SearchConfig configures a KeySearchService
type SearchConfig struct {
	Params    *DecryptionParams
	Host      *HostBinary
	Workers   int
	BatchSize int
	Logger    *logrus.Logger
}

// SearchResult is the outcome of a completed search
type SearchResult struct {
	Found      bool
	Key        []byte
	Offset     int
	Iterations uint64
	RealSize   int
	Workers    int
	Elapsed    time.Duration
}

// KeyHex returns the hex-encoded key, or an empty string when nothing was found
func (r *SearchResult) KeyHex() string {
	if !r.Found {
		return ""
	}
	return hex.EncodeToString(r.Key)
}

// Percent returns how much of the searchable range was tested
func (r *SearchResult) Percent() float64 {
	if r.RealSize == 0 {
		return 100
	}
	return float64(r.Iterations) / float64(r.RealSize) * 100
}

// KeySearchService scans every KeySize window of a host binary for the pack key
type KeySearchService struct {
	params    *DecryptionParams
	host      *HostBinary
	workers   int
	batchSize int
	state     *SearchState
	logger    *logrus.Logger
}

// NewKeySearchService validates the configuration and creates a search service
func NewKeySearchService(cfg SearchConfig) (*KeySearchService, error) {
	if cfg.Params == nil {
		return nil, fmt.Errorf("decryption parameters are required")
	}
	if cfg.Host == nil {
		return nil, fmt.Errorf("host binary is required")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, cfg.Workers)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &KeySearchService{
		params:    cfg.Params,
		host:      cfg.Host,
		workers:   cfg.Workers,
		batchSize: batchSize,
		state:     NewSearchState(),
		logger:    logger,
	}, nil
}

// State exposes the shared counters for progress reporting
func (s *KeySearchService) State() *SearchState {
	return s.state
}

// RealSize returns the number of offsets being searched
func (s *KeySearchService) RealSize() int {
	return s.host.RealSize()
}

// Run starts one worker per chunk and waits for all of them. A search that exhausts its
// range is not an error; the result simply reports Found=false. If ctx is cancelled
// before a key is found, the partial result is returned together with ctx.Err().
func (s *KeySearchService) Run(ctx context.Context) (*SearchResult, error) {
	chunks, err := Partition(s.host.RealSize(), s.workers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			s.scanChunk(gctx, chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SearchResult{
		Iterations: s.state.Iterations(),
		RealSize:   s.host.RealSize(),
		Workers:    s.workers,
		Elapsed:    time.Since(start),
	}
	if fk := s.state.FoundKey(); fk != nil {
		result.Found = true
		result.Key = append([]byte(nil), fk.Key[:]...)
		result.Offset = fk.Offset
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// scanChunk tests every offset of chunk, highest first; keys tend to sit near the end
// of the binary.
func (s *KeySearchService) scanChunk(ctx context.Context, chunk Chunk) {
	log := s.logger.WithFields(logrus.Fields{
		"worker": chunk.Index,
		"start":  chunk.Start,
		"end":    chunk.End,
	})
	log.Debug("worker started")

	verifier := NewDecryptVerifier(s.params)
	batch := uint64(s.batchSize)
	var local uint64

	for offset := chunk.End - 1; offset >= chunk.Start; offset-- {
		window := s.host.Window(offset)
		local++

		if verifier.TryDecrypt(window) {
			s.state.AddIterations(local)
			if s.state.TryRecordKey(window, offset) {
				log.WithFields(logrus.Fields{
					"offset": offset,
					"key":    hex.EncodeToString(window),
				}).Info("key found")
			}
			return
		}

		if local >= batch {
			s.state.AddIterations(local)
			local = 0
			if s.state.Found() {
				log.Debug("worker stopping, key found elsewhere")
				return
			}
			if ctx.Err() != nil {
				log.Debug("worker cancelled")
				return
			}
		}
	}

	s.state.AddIterations(local)
	log.Debug("worker exhausted range")
}
