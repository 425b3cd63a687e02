package cryptox

import (
	"github.com/glopmts/my-accounts-sub000/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor (2^10 rounds). Hashing is deliberately
// slow; do not call it on a latency-critical hot path.
const HashCost = 10

// HashPassword hashes a user-chosen password with bcrypt. The returned
// string packs algorithm tag, cost, salt and digest in the standard bcrypt
// format. An empty plaintext is rejected with common.ErrorInvalidInput.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", common.ErrorInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches the stored hash.
// It returns false (never an error) for an empty candidate, an empty or
// malformed hash, or a true mismatch. bcrypt's comparison is constant-time
// over the digest.
func VerifyPassword(candidate, hash string) bool {
	if candidate == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
