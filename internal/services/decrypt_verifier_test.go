package services

import (
	"crypto/md5"
	"encoding/binary"
	"testing"

	"github.com/deploymenttheory/go-pckbrute/internal/parsers/pck"
	"github.com/deploymenttheory/go-pckbrute/internal/testutil"
	"github.com/deploymenttheory/go-pckbrute/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestParams builds a pack encrypted with key and returns its decryption parameters
func createTestParams(t *testing.T, key [types.KeySize]byte, iv [types.PackIVSize]byte, plaintext []byte) *DecryptionParams {
	t.Helper()
	data := testutil.BuildPack(testutil.PackSpec{Key: key, IV: iv, Plaintext: plaintext})
	reader, err := pck.NewPackHeaderReader(data, binary.LittleEndian)
	require.NoError(t, err)
	params, err := NewDecryptionParams(reader)
	require.NoError(t, err)
	return params
}

func TestDecryptVerifierRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "single block", plaintext: []byte("AAAAAAAAAAAAAAAA")},
		{name: "partial block", plaintext: []byte("short")},
		{name: "multi block unaligned", plaintext: []byte("res://icon.svg res://main.tscn res://project.binary")},
		{name: "empty payload", plaintext: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := testutil.Key(9)
			iv := [types.PackIVSize]byte{0xA0, 0xA1, 0xA2}
			params := createTestParams(t, key, iv, tt.plaintext)
			verifier := NewDecryptVerifier(params)

			assert.True(t, verifier.TryDecrypt(key[:]))

			wrong := key
			wrong[31] ^= 0x01
			if len(tt.plaintext) > 0 {
				assert.False(t, verifier.TryDecrypt(wrong[:]))
			}
		})
	}
}

func TestDecryptVerifierScratchReuse(t *testing.T) {
	key := testutil.Key(3)
	params := createTestParams(t, key, [types.PackIVSize]byte{}, []byte("scratch buffers are reused"))
	verifier := NewDecryptVerifier(params)
	original := append([]byte(nil), params.ciphertext...)

	other := testutil.Key(4)
	sequence := []struct {
		key      [types.KeySize]byte
		expected bool
	}{
		{other, false},
		{key, true},
		{other, false},
		{key, true},
		{key, true},
	}
	for _, step := range sequence {
		assert.Equal(t, step.expected, verifier.TryDecrypt(step.key[:]))
	}

	assert.Equal(t, original, params.ciphertext, "ciphertext must never be modified")
}

func TestDecryptVerifierIgnoresPadding(t *testing.T) {
	key := testutil.Key(5)
	plaintext := []byte("seventeen bytes!!")
	require.Len(t, plaintext, 17)

	params := createTestParams(t, key, [types.PackIVSize]byte{}, plaintext)
	require.Equal(t, 32, params.CiphertextLength())
	require.Equal(t, 17, params.DeclaredLength())

	// Flipping the final ciphertext byte only changes the final (padding) plaintext byte
	params.ciphertext[31] ^= 0xFF
	verifier := NewDecryptVerifier(params)
	assert.True(t, verifier.TryDecrypt(key[:]))
}

func TestDecryptVerifierInvalidKeyLength(t *testing.T) {
	params := createTestParams(t, testutil.Key(1), [types.PackIVSize]byte{}, []byte("payload"))
	verifier := NewDecryptVerifier(params)

	for _, size := range []int{0, 16, 24, 31, 33} {
		assert.Panics(t, func() {
			verifier.TryDecrypt(make([]byte, size))
		}, "key length %d", size)
	}
}

func TestDecryptionParamsOwnCiphertext(t *testing.T) {
	key := testutil.Key(2)
	data := testutil.BuildPack(testutil.PackSpec{Key: key, Plaintext: []byte("owned copy")})
	reader, err := pck.NewPackHeaderReader(data, binary.LittleEndian)
	require.NoError(t, err)

	params, err := NewDecryptionParams(reader)
	require.NoError(t, err)

	// Mutating the reader's buffer must not leak into the parameters
	reader.Ciphertext()[0] ^= 0xFF
	assert.True(t, NewDecryptVerifier(params).TryDecrypt(key[:]))
	assert.Equal(t, md5.Sum([]byte("owned copy")), params.checksum)
}
