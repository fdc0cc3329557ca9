// Package testutil builds encrypted pack archives and host binaries for tests.
package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/binary"

	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// PackSpec describes a pack to build
type PackSpec struct {
	Key       [types.KeySize]byte
	IV        [types.PackIVSize]byte
	Plaintext []byte

	FormatVersion uint32
	VersionMajor  uint32
	VersionMinor  uint32
	VersionPatch  uint32
	PackFlags     uint32
	FileBase      uint64
	FileCount     uint32
}

// EncryptCFB zero-pads plaintext to the cipher block size and encrypts it with AES-256-CFB
func EncryptCFB(key [types.KeySize]byte, iv [types.PackIVSize]byte, plaintext []byte) []byte {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		panic(err)
	}
	padded := make([]byte, types.AlignUp(uint64(len(plaintext))))
	copy(padded, plaintext)

	out := make([]byte, len(padded))
	cipher.NewCFBEncrypter(block, iv[:]).XORKeyStream(out, padded)
	return out
}

// BuildPack encodes a complete pack: fixed header followed by the encrypted payload
func BuildPack(spec PackSpec) []byte {
	le := binary.LittleEndian
	ciphertext := EncryptCFB(spec.Key, spec.IV, spec.Plaintext)
	sum := md5.Sum(spec.Plaintext)

	buf := make([]byte, 0, types.PackHeaderSize+len(ciphertext))
	buf = le.AppendUint32(buf, types.PackMagic)
	buf = le.AppendUint32(buf, spec.FormatVersion)
	buf = le.AppendUint32(buf, spec.VersionMajor)
	buf = le.AppendUint32(buf, spec.VersionMinor)
	buf = le.AppendUint32(buf, spec.VersionPatch)
	buf = le.AppendUint32(buf, spec.PackFlags)
	buf = le.AppendUint64(buf, spec.FileBase)
	buf = append(buf, make([]byte, types.PackReservedSize)...)
	buf = le.AppendUint32(buf, spec.FileCount)
	buf = append(buf, sum[:]...)
	buf = le.AppendUint64(buf, uint64(len(spec.Plaintext)))
	buf = append(buf, spec.IV[:]...)
	buf = append(buf, ciphertext...)
	return buf
}

// EmbedPack appends pack to host. With trailer set the size and magic trailer
// written by exporters is appended as well.
func EmbedPack(host, pack []byte, trailer bool) []byte {
	out := make([]byte, 0, len(host)+len(pack)+types.EmbeddedTrailerSize)
	out = append(out, host...)
	out = append(out, pack...)
	if trailer {
		out = binary.LittleEndian.AppendUint64(out, uint64(len(pack)))
		out = append(out, types.PackMagicBytes...)
	}
	return out
}

// HostWithKey returns size zero bytes with key copied in at offset
func HostWithKey(size, offset int, key [types.KeySize]byte) []byte {
	host := make([]byte, size)
	copy(host[offset:], key[:])
	return host
}

// Key returns a deterministic non-zero key derived from seed
func Key(seed byte) [types.KeySize]byte {
	var k [types.KeySize]byte
	for i := range k {
		k[i] = seed + byte(i)*7 + 1
	}
	return k
}
