package pck

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-pckbrute/internal/interfaces"
	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// packHeaderReader implements the PackHeaderReader interface
type packHeaderReader struct {
	header     *types.PackHeader
	ciphertext []byte
	offset     int
}

// NewPackHeaderReader decodes the pack header at the start of data and reads the
// block-aligned ciphertext that follows it. Header values are not validated.
func NewPackHeaderReader(data []byte, endian binary.ByteOrder) (interfaces.PackHeaderReader, error) {
	return newPackHeaderReaderAt(data, 0, endian)
}

// NewPackHeaderReaderAt decodes a pack header starting at offset inside data.
func NewPackHeaderReaderAt(data []byte, offset int, endian binary.ByteOrder) (interfaces.PackHeaderReader, error) {
	return newPackHeaderReaderAt(data, offset, endian)
}

func newPackHeaderReaderAt(data []byte, offset int, endian binary.ByteOrder) (*packHeaderReader, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("pack offset %d outside of %d bytes of data", offset, len(data))
	}

	br := NewBinaryReader(data[offset:], endian)
	header, err := parsePackHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pack header: %w", err)
	}

	// Check the declared length before aligning so a hostile value cannot overflow
	if header.DeclaredLength > uint64(br.Remaining()) {
		return nil, fmt.Errorf("declared length %d exceeds %d remaining bytes: %w", header.DeclaredLength, br.Remaining(), ErrTruncated)
	}
	aligned := types.AlignUp(header.DeclaredLength)

	ciphertext, err := br.ReadBytes(int(aligned))
	if err != nil {
		return nil, fmt.Errorf("failed to read ciphertext: %w", err)
	}

	return &packHeaderReader{
		header:     header,
		ciphertext: ciphertext,
		offset:     offset,
	}, nil
}

// parsePackHeader reads the fixed header fields in declared order
func parsePackHeader(br *BinaryReader) (*types.PackHeader, error) {
	h := &types.PackHeader{}

	fields := []*uint32{
		&h.Magic,
		&h.FormatVersion,
		&h.VersionMajor,
		&h.VersionMinor,
		&h.VersionPatch,
		&h.PackFlags,
	}
	for _, f := range fields {
		v, err := br.ReadUint32()
		if err != nil {
			return nil, err
		}
		*f = v
	}

	var err error
	if h.FileBase, err = br.ReadUint64(); err != nil {
		return nil, err
	}
	if err = br.Skip(types.PackReservedSize); err != nil {
		return nil, err
	}
	if h.FileCount, err = br.ReadUint32(); err != nil {
		return nil, err
	}
	if err = br.ReadBuffer(h.Checksum[:], false); err != nil {
		return nil, err
	}
	if h.DeclaredLength, err = br.ReadUint64(); err != nil {
		return nil, err
	}
	if err = br.ReadBuffer(h.IV[:], false); err != nil {
		return nil, err
	}

	return h, nil
}

func (r *packHeaderReader) Header() *types.PackHeader {
	return r.header
}

func (r *packHeaderReader) Magic() uint32 {
	return r.header.Magic
}

func (r *packHeaderReader) FormatVersion() uint32 {
	return r.header.FormatVersion
}

func (r *packHeaderReader) EngineVersion() (uint32, uint32, uint32) {
	return r.header.VersionMajor, r.header.VersionMinor, r.header.VersionPatch
}

func (r *packHeaderReader) PackFlags() uint32 {
	return r.header.PackFlags
}

func (r *packHeaderReader) FileBase() uint64 {
	return r.header.FileBase
}

func (r *packHeaderReader) FileCount() uint32 {
	return r.header.FileCount
}

func (r *packHeaderReader) Checksum() [types.PackChecksumSize]byte {
	return r.header.Checksum
}

func (r *packHeaderReader) DeclaredLength() uint64 {
	return r.header.DeclaredLength
}

func (r *packHeaderReader) IV() [types.PackIVSize]byte {
	return r.header.IV
}

func (r *packHeaderReader) Ciphertext() []byte {
	return r.ciphertext
}

func (r *packHeaderReader) Offset() int {
	return r.offset
}
