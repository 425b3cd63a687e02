package cryptox

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	require.Len(t, key, KeySize)
	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey(t)

	tests := []string{
		"my-secret-value",
		"p@ssw0rd with spaces",
		"множество юникода 🤫",
		"x",
	}

	for _, plaintext := range tests {
		sealed, err := EncryptText(plaintext, key)
		require.NoError(t, err)
		require.True(t, IsEncryptedFormat(sealed))

		got, err := DecryptText(sealed, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncryptText_BlobShape(t *testing.T) {
	key := testKey(t)

	sealed, err := EncryptText("my-secret-value", key)
	require.NoError(t, err)

	var blob EncryptedBlob
	require.NoError(t, json.Unmarshal([]byte(sealed), &blob))

	assert.Equal(t, AlgorithmAESGCM, blob.Algorithm)
	for name, field := range map[string]string{
		"iv": blob.IV, "encrypted": blob.Encrypted, "authTag": blob.AuthTag,
	} {
		require.NotEmpty(t, field, name)
		_, err := hex.DecodeString(field)
		require.NoError(t, err, "%s must be hex", name)
	}

	iv, _ := hex.DecodeString(blob.IV)
	tag, _ := hex.DecodeString(blob.AuthTag)
	assert.Len(t, iv, IVSize)
	assert.Len(t, tag, TagSize)
}

func TestEncryptText_FreshIVPerCall(t *testing.T) {
	key := testKey(t)

	a, err := EncryptText("same", key)
	require.NoError(t, err)
	b, err := EncryptText("same", key)
	require.NoError(t, err)

	blobA, _ := ParseBlob(a)
	blobB, _ := ParseBlob(b)
	assert.NotEqual(t, blobA.IV, blobB.IV)
	assert.NotEqual(t, blobA.Encrypted, blobB.Encrypted)
}

func TestEncryptText_EmptyPlaintextPassthrough(t *testing.T) {
	// Empty plaintext means "field not set" and is stored as-is.
	sealed, err := EncryptText("", testKey(t))
	require.NoError(t, err)
	assert.Equal(t, "", sealed)
}

func TestEncryptText_InvalidKeyLength(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := EncryptText("secret", make([]byte, size))
		assert.ErrorIs(t, err, common.ErrInvalidKeyLength, "key size %d", size)
	}
}

func TestDecryptText_InvalidKeyLength(t *testing.T) {
	_, err := DecryptText("whatever", make([]byte, 31))
	assert.ErrorIs(t, err, common.ErrInvalidKeyLength)
}

func TestDecryptText_LegacyPlaintextPassthrough(t *testing.T) {
	key := testKey(t)

	tests := []string{
		"",
		"legacy plain value",
		"{not json",
		`{"iv":"aa"}`,                      // missing sub-fields
		`{"foo":"bar","algorithm":"x"}`,    // wrong shape
		`["iv","encrypted","authTag"]`,     // not an object
		"aabbccddee",                       // hex but not a blob
	}

	for _, text := range tests {
		got, err := DecryptText(text, key)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, text, got, "non-blob input must pass through unchanged")
	}
}

func flipBit(t *testing.T, hexField string) string {
	t.Helper()
	raw, err := hex.DecodeString(hexField)
	require.NoError(t, err)
	raw[0] ^= 0x01
	return hex.EncodeToString(raw)
}

func TestDecryptText_TamperDetection(t *testing.T) {
	key := testKey(t)

	sealed, err := EncryptText("my-secret-value", key)
	require.NoError(t, err)

	tamper := []struct {
		name   string
		mutate func(b *EncryptedBlob)
	}{
		{"ciphertext bit flip", func(b *EncryptedBlob) { b.Encrypted = flipBit(t, b.Encrypted) }},
		{"authTag bit flip", func(b *EncryptedBlob) { b.AuthTag = flipBit(t, b.AuthTag) }},
		{"iv bit flip", func(b *EncryptedBlob) { b.IV = flipBit(t, b.IV) }},
		{"non-hex ciphertext", func(b *EncryptedBlob) { b.Encrypted = "zz" + b.Encrypted[2:] }},
	}

	for _, tc := range tamper {
		t.Run(tc.name, func(t *testing.T) {
			blob, ok := ParseBlob(sealed)
			require.True(t, ok)
			tc.mutate(blob)
			corrupted, err := blob.Serialize()
			require.NoError(t, err)

			got, err := DecryptText(corrupted, key)
			assert.ErrorIs(t, err, common.ErrDecryptionFailed)
			assert.Empty(t, got, "tampered blob must never yield plaintext")
		})
	}
}

func TestDecryptText_WrongKeyRejected(t *testing.T) {
	key := testKey(t)

	sealed, err := EncryptText("my-secret-value", key)
	require.NoError(t, err)

	other := make([]byte, KeySize)
	copy(other, key)
	other[0] ^= 0xff

	got, err := DecryptText(sealed, other)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
	assert.Empty(t, got)
}

func TestIsEncryptedFormat(t *testing.T) {
	key := testKey(t)
	sealed, err := EncryptText("v", key)
	require.NoError(t, err)

	assert.True(t, IsEncryptedFormat(sealed))

	for _, text := range []string{"", "plain", "{}", `{"iv":"aa","encrypted":"bb"}`} {
		assert.False(t, IsEncryptedFormat(text), "input %q", text)
	}
}
