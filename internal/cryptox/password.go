package cryptox

import (
	"fmt"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/shared"
)

// DefaultPasswordLength is the suggested length for generated passwords.
const DefaultPasswordLength = 16

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}<>?"
)

// GenerateStrongPassword produces a random password of the given length
// guaranteed to contain at least one uppercase letter, one lowercase
// letter, one digit and one symbol. It is a user-facing convenience
// generator, not part of the security-critical path.
//
// A length below 4 cannot satisfy the class guarantees and is rejected.
func GenerateStrongPassword(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("%w: password length must be at least 4", common.ErrorInvalidInput)
	}

	all := upperChars + lowerChars + digitChars + symbolChars

	chars := make([]byte, 0, length)
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := pickChar(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := pickChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates so the guaranteed classes are not always up front.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := shared.RandInt(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func pickChar(set string) (byte, error) {
	i, err := shared.RandInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}
