// File: internal/interfaces/pack.go
package interfaces

import (
	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// PackHeaderReader provides methods for reading a decoded pack header and its ciphertext
type PackHeaderReader interface {
	// Header returns the decoded fixed header
	Header() *types.PackHeader

	// Magic returns the signature read from the header
	Magic() uint32

	// FormatVersion returns the pack format revision
	FormatVersion() uint32

	// EngineVersion returns the major, minor and patch version of the writing engine
	EngineVersion() (major, minor, patch uint32)

	// PackFlags returns the pack feature flags
	PackFlags() uint32

	// FileBase returns the offset of file data relative to the pack start
	FileBase() uint64

	// FileCount returns the number of directory entries
	FileCount() uint32

	// Checksum returns the expected MD5 digest of the decrypted payload
	Checksum() [types.PackChecksumSize]byte

	// DeclaredLength returns the unpadded payload length
	DeclaredLength() uint64

	// IV returns the cipher initialization vector
	IV() [types.PackIVSize]byte

	// Ciphertext returns the block-aligned encrypted payload
	Ciphertext() []byte

	// Offset returns the position of the header inside the source bytes
	Offset() int
}

// KeyVerifier tests candidate keys against an encrypted payload
type KeyVerifier interface {
	// TryDecrypt decrypts the payload with key and reports whether the checksum matches
	TryDecrypt(key []byte) bool
}
