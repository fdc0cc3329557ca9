// Package types implements data structures for encrypted resource pack archives.
// The layout follows the pack format written by the engine's export templates.
package types

// Pack Header
// Every pack starts with a fixed header followed by the encrypted directory blob.
// All multi-byte integers are little-endian.

// PackMagic is the signature at the start of every pack header ("GDPC").
const PackMagic uint32 = 0x43504447

// PackMagicBytes is PackMagic as it appears on disk.
var PackMagicBytes = []byte{'G', 'D', 'P', 'C'}

const (
	// PackReservedSize is the number of reserved bytes after the file base (16 uint32 words).
	PackReservedSize = 16 * 4

	// PackChecksumSize is the size of the MD5 digest stored in the header.
	PackChecksumSize = 16

	// PackIVSize is the size of the cipher initialization vector.
	PackIVSize = 16

	// CipherBlockSize is the AES block size; ciphertext is padded up to a multiple of it.
	CipherBlockSize = 16

	// KeySize is the size of an AES-256 key and of every candidate window.
	KeySize = 32

	// PackHeaderSize is the number of header bytes preceding the ciphertext.
	PackHeaderSize = 4*6 + 8 + PackReservedSize + 4 + PackChecksumSize + 8 + PackIVSize

	// EmbeddedTrailerSize is the size of the trailer appended to a binary with an embedded pack:
	// a uint64 pack size followed by the magic.
	EmbeddedTrailerSize = 8 + 4
)

// PackHeader is the decoded fixed header of a pack archive.
type PackHeader struct {
	// Magic is the pack signature. It is not validated by the decoder.
	Magic uint32
	// FormatVersion is the pack format revision.
	FormatVersion uint32
	// VersionMajor, VersionMinor and VersionPatch identify the engine that wrote the pack.
	VersionMajor uint32
	VersionMinor uint32
	VersionPatch uint32
	// PackFlags holds the pack feature flags.
	PackFlags uint32
	// FileBase is the offset of file data, relative to the pack start.
	FileBase uint64
	// FileCount is the number of entries in the directory.
	FileCount uint32
	// Checksum is the MD5 digest of the decrypted directory blob.
	Checksum [PackChecksumSize]byte
	// DeclaredLength is the unpadded length of the decrypted directory blob.
	DeclaredLength uint64
	// IV is the CFB initialization vector.
	IV [PackIVSize]byte
}

// AlignUp rounds length up to the next multiple of CipherBlockSize.
func AlignUp(length uint64) uint64 {
	if rem := length % CipherBlockSize; rem != 0 {
		return length + (CipherBlockSize - rem)
	}
	return length
}
