package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"fmt"

	"github.com/deploymenttheory/go-pckbrute/internal/interfaces"
	"github.com/deploymenttheory/go-pckbrute/internal/types"
)

// DecryptionParams holds the immutable inputs of a decrypt attempt. It is safe to share
// between workers.
type DecryptionParams struct {
	ciphertext     []byte
	declaredLength int
	iv             [types.PackIVSize]byte
	checksum       [types.PackChecksumSize]byte
}

// NewDecryptionParams copies the decryption inputs out of a parsed pack header
func NewDecryptionParams(reader interfaces.PackHeaderReader) (*DecryptionParams, error) {
	ciphertext := reader.Ciphertext()
	declared := reader.DeclaredLength()
	if declared > uint64(len(ciphertext)) || uint64(len(ciphertext)) != types.AlignUp(declared) {
		return nil, fmt.Errorf("ciphertext of %d bytes does not match declared length %d", len(ciphertext), declared)
	}

	owned := make([]byte, len(ciphertext))
	copy(owned, ciphertext)

	return &DecryptionParams{
		ciphertext:     owned,
		declaredLength: int(declared),
		iv:             reader.IV(),
		checksum:       reader.Checksum(),
	}, nil
}

// DeclaredLength returns the unpadded payload length
func (p *DecryptionParams) DeclaredLength() int {
	return p.declaredLength
}

// CiphertextLength returns the block-aligned ciphertext length
func (p *DecryptionParams) CiphertextLength() int {
	return len(p.ciphertext)
}

// DecryptVerifier decrypts the payload into a private scratch buffer and compares its
// MD5 digest with the expected checksum. A verifier must not be shared between goroutines.
type DecryptVerifier struct {
	params  *DecryptionParams
	scratch []byte
}

var _ interfaces.KeyVerifier = (*DecryptVerifier)(nil)

// NewDecryptVerifier creates a verifier with its own scratch buffer
func NewDecryptVerifier(params *DecryptionParams) *DecryptVerifier {
	return &DecryptVerifier{
		params:  params,
		scratch: make([]byte, len(params.ciphertext)),
	}
}

// TryDecrypt decrypts the ciphertext with key using AES-256-CFB and reports whether the
// MD5 of the first DeclaredLength bytes equals the stored checksum. Padding bytes are not
// covered by the checksum. Every candidate is decrypted in full; there is no pre-filter.
//
// key must be exactly 32 bytes; anything else is a programming error and panics.
func (v *DecryptVerifier) TryDecrypt(key []byte) bool {
	if len(key) != types.KeySize {
		panic(fmt.Sprintf("invalid key length: %d != %d", len(key), types.KeySize))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(fmt.Sprintf("failed to create cipher: %v", err))
	}
	cipher.NewCFBDecrypter(block, v.params.iv[:]).XORKeyStream(v.scratch, v.params.ciphertext)

	return md5.Sum(v.scratch[:v.params.declaredLength]) == v.params.checksum
}
