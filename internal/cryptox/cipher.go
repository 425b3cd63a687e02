// Package cryptox implements the secret-field protection primitives:
// authenticated encryption of free-text secrets (AES-256-GCM with a
// self-describing serialized blob), one-way password hashing (bcrypt),
// key derivation from a master password (argon2id), and a random
// password generator.
//
// Failure semantics follow two tracks. Key-shape problems are
// configuration defects and fail loudly with common.ErrInvalidKeyLength.
// Tampered or corrupt blobs are data-quality problems and fail softly
// with common.ErrDecryptionFailed, so a record with one bad field can
// still render its other fields.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/glopmts/my-accounts-sub000/internal/common"
)

// EncryptText encrypts plaintext with the given 32-byte key and returns the
// serialized blob. A fresh random 16-byte IV is generated per call; an IV is
// never reused with the same key.
//
// Empty plaintext is passed through unencrypted and returns the empty
// string. This is a deliberate shortcut for "field not set", not a general
// rule.
func EncryptText(plaintext string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", common.ErrInvalidKeyLength
	}
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// Seal appends the tag to the ciphertext; the blob stores them apart.
	sealed := aesgcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	blob := &EncryptedBlob{
		IV:        hex.EncodeToString(iv),
		Encrypted: hex.EncodeToString(ciphertext),
		AuthTag:   hex.EncodeToString(tag),
		Algorithm: AlgorithmAESGCM,
	}
	return blob.Serialize()
}

// DecryptText reverses EncryptText.
//
// Input that does not look like a serialized blob is returned unchanged,
// which tolerates legacy plaintext values stored before encryption was
// introduced. A recognizable blob whose authentication tag does not verify
// (tampering, wrong key, corruption) yields common.ErrDecryptionFailed;
// the plaintext is never returned in that case.
func DecryptText(text string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", common.ErrInvalidKeyLength
	}

	blob, ok := ParseBlob(text)
	if !ok {
		return text, nil
	}

	iv, ciphertext, tag, err := blob.decode()
	if err != nil {
		return "", fmt.Errorf("%w: malformed blob field", common.ErrDecryptionFailed)
	}
	if len(iv) != IVSize || len(tag) != TagSize {
		return "", fmt.Errorf("%w: unexpected iv or tag length", common.ErrDecryptionFailed)
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", common.ErrDecryptionFailed)
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}
	return aesgcm, nil
}
