package cryptox

import (
	"strings"
	"testing"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStrongPassword_ContainsAllClasses(t *testing.T) {
	for i := 0; i < 100; i++ {
		pw, err := GenerateStrongPassword(DefaultPasswordLength)
		require.NoError(t, err)
		require.Len(t, pw, DefaultPasswordLength)

		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase: %s", pw)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase: %s", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit: %s", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol: %s", pw)
	}
}

func TestGenerateStrongPassword_MinimumLength(t *testing.T) {
	pw, err := GenerateStrongPassword(4)
	require.NoError(t, err)
	assert.Len(t, pw, 4)

	_, err = GenerateStrongPassword(3)
	assert.ErrorIs(t, err, common.ErrorInvalidInput)
}

func TestGenerateStrongPassword_NotRepeating(t *testing.T) {
	a, err := GenerateStrongPassword(DefaultPasswordLength)
	require.NoError(t, err)
	b, err := GenerateStrongPassword(DefaultPasswordLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
