package cryptox

import "golang.org/x/crypto/argon2"

// DeriveKey derives a 32-byte encryption key from a human master password
// and fixed salt material using argon2id. It is an optional helper for
// callers that want a password-derived key instead of the configured one;
// the primary account-storage path uses the process-wide key directly.
//
// Same inputs always produce the same key. Callers should wipe the result
// with shared.WipeByteArray once finished.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}
