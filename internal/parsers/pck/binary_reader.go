package pck

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when a read runs past the end of the source bytes.
var ErrTruncated = fmt.Errorf("pack data truncated: %w", io.ErrUnexpectedEOF)

// BinaryReader reads fixed-width fields sequentially from a byte slice
type BinaryReader struct {
	data   []byte
	offset int
	order  binary.ByteOrder
}

// NewBinaryReader creates a new binary reader over data with the specified byte order
func NewBinaryReader(data []byte, order binary.ByteOrder) *BinaryReader {
	return &BinaryReader{data: data, order: order}
}

// Offset returns the current read position
func (br *BinaryReader) Offset() int {
	return br.offset
}

// Remaining returns the number of unread bytes
func (br *BinaryReader) Remaining() int {
	return len(br.data) - br.offset
}

func (br *BinaryReader) take(n int) ([]byte, error) {
	if n < 0 || n > br.Remaining() {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, br.offset, br.Remaining(), ErrTruncated)
	}
	b := br.data[br.offset : br.offset+n]
	br.offset += n
	return b, nil
}

// ReadBuffer fills buf from the current position. When bigEndian is set the bytes
// are stored in reverse order.
func (br *BinaryReader) ReadBuffer(buf []byte, bigEndian bool) error {
	src, err := br.take(len(buf))
	if err != nil {
		return err
	}
	if !bigEndian {
		copy(buf, src)
		return nil
	}
	for i := range src {
		buf[len(buf)-1-i] = src[i]
	}
	return nil
}

// ReadUint32 reads a uint32
func (br *BinaryReader) ReadUint32() (uint32, error) {
	b, err := br.take(4)
	if err != nil {
		return 0, err
	}
	return br.order.Uint32(b), nil
}

// ReadUint64 reads a uint64
func (br *BinaryReader) ReadUint64() (uint64, error) {
	b, err := br.take(8)
	if err != nil {
		return 0, err
	}
	return br.order.Uint64(b), nil
}

// ReadBytes returns a copy of the next n bytes
func (br *BinaryReader) ReadBytes(n int) ([]byte, error) {
	b, err := br.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Skip advances the read position by n bytes
func (br *BinaryReader) Skip(n int) error {
	_, err := br.take(n)
	return err
}

// IsTruncated reports whether err was caused by reading past the end of the data
func IsTruncated(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
