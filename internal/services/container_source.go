package services

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-pckbrute/internal/interfaces"
	"github.com/deploymenttheory/go-pckbrute/internal/parsers/pck"
)

// Target is everything a key search needs, resolved once before any worker starts
type Target struct {
	Header interfaces.PackHeaderReader
	Params *DecryptionParams
	Host   *HostBinary
	// PackOffset is where the pack starts inside the host binary, or -1 for a standalone pack
	PackOffset int
}

// ContainerSource resolves the pack and host binary to search
type ContainerSource interface {
	// Resolve reads and parses the inputs
	Resolve() (*Target, error)
	// Describe returns a short human-readable summary of the source
	Describe() string
}

// StandaloneSource is a pack file distributed next to the binary that holds its key
type StandaloneSource struct {
	PackPath   string
	BinaryPath string
}

// Resolve parses the pack file and loads the whole binary as search space
func (s *StandaloneSource) Resolve() (*Target, error) {
	data, err := readFile(s.PackPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	header, err := pck.NewPackHeaderReader(data, binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	params, err := NewDecryptionParams(header)
	if err != nil {
		return nil, err
	}

	host, err := LoadHostBinary(s.BinaryPath)
	if err != nil {
		return nil, err
	}

	return &Target{Header: header, Params: params, Host: host, PackOffset: -1}, nil
}

func (s *StandaloneSource) Describe() string {
	return fmt.Sprintf("pack %s, binary %s", s.PackPath, s.BinaryPath)
}

// EmbeddedSource is a binary carrying its own encrypted pack
type EmbeddedSource struct {
	BinaryPath string
}

// Resolve locates the embedded pack and limits the search to the bytes before it
func (s *EmbeddedSource) Resolve() (*Target, error) {
	data, err := readFile(s.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary: %w", err)
	}
	return resolveEmbedded(data)
}

func (s *EmbeddedSource) Describe() string {
	return fmt.Sprintf("binary %s (embedded pack)", s.BinaryPath)
}

func resolveEmbedded(data []byte) (*Target, error) {
	offset, err := pck.LocateEmbeddedPack(data)
	if err != nil {
		return nil, err
	}

	header, err := pck.NewPackHeaderReaderAt(data, offset, binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	params, err := NewDecryptionParams(header)
	if err != nil {
		return nil, err
	}

	host, err := NewHostBinary(data, offset)
	if err != nil {
		return nil, err
	}

	return &Target{Header: header, Params: params, Host: host, PackOffset: offset}, nil
}
