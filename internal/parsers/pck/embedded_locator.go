package pck

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// ErrPackNotFound is returned when no pack signature can be located in a host binary.
var ErrPackNotFound = errors.New("embedded pack signature not found")

// LocateEmbeddedPack returns the offset of the pack header embedded in a host binary.
//
// Exported binaries end with a trailer of the pack size followed by the magic, which
// points back at the header. When the trailer is missing or inconsistent the binary is
// scanned backwards for the last signature with room for a full header after it.
// Everything before the returned offset belongs to the host executable.
func LocateEmbeddedPack(data []byte) (int, error) {
	if offset, ok := locateByTrailer(data); ok {
		return offset, nil
	}

	limit := len(data)
	if hasTrailerMagic(data) {
		limit -= types.EmbeddedTrailerSize
	}
	return scanForMagic(data, limit)
}

func hasTrailerMagic(data []byte) bool {
	if len(data) < types.EmbeddedTrailerSize {
		return false
	}
	return bytes.Equal(data[len(data)-4:], types.PackMagicBytes)
}

// locateByTrailer follows the size stored in the trailer back to the header
func locateByTrailer(data []byte) (int, bool) {
	if !hasTrailerMagic(data) {
		return 0, false
	}

	end := len(data) - types.EmbeddedTrailerSize
	size := binary.LittleEndian.Uint64(data[end : end+8])
	if size > uint64(end) {
		return 0, false
	}

	offset := end - int(size)
	if offset+types.PackHeaderSize > end {
		return 0, false
	}
	if !bytes.Equal(data[offset:offset+4], types.PackMagicBytes) {
		return 0, false
	}
	return offset, true
}

// scanForMagic searches data[:limit] backwards for a signature followed by a full header
func scanForMagic(data []byte, limit int) (int, error) {
	if limit < 0 {
		limit = 0
	}
	window := data[:limit]
	for {
		idx := bytes.LastIndex(window, types.PackMagicBytes)
		if idx < 0 {
			return 0, ErrPackNotFound
		}
		if idx+types.PackHeaderSize <= limit {
			return idx, nil
		}
		window = window[:idx]
	}
}
