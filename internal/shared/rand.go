// Package shared provides utility functions for working with random
// strings and secure memory wiping.
package shared

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length will be
// twice the size. It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandInt returns a uniformly distributed random integer in [0, max),
// using the cryptographic random source. Uniformity matters for access
// codes: a biased letter or digit would shrink the effective code space.
func RandInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. This is useful for removing sensitive data such as passwords or
// derived keys from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
