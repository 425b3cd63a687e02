package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/glopmts/my-accounts-sub000/internal/common"
	"github.com/glopmts/my-accounts-sub000/internal/shared"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = 100000 // five decimal digits, zero-padded

	// uniqueCodeAttempts bounds the random-generation loop before the
	// deterministic fallback kicks in. With 2.6M possible codes the loop
	// exhausts only under extreme population or contention.
	uniqueCodeAttempts = 25

	// suggestion search bounds
	suggestLimit        = 5
	suggestDigitRadius  = 20
	suggestLetterRadius = 3
)

var codeFormat = regexp.MustCompile(`^[A-Z][0-9]{5}$`)

// IsValidCodeFormat reports whether code is exactly one uppercase ASCII
// letter followed by exactly five ASCII digits.
func IsValidCodeFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// GenerateCode produces a random access code: one uniform uppercase letter
// plus five uniform decimal digits (zero-padded), e.g. "A12345".
func GenerateCode() (string, error) {
	letter, err := shared.RandInt(len(codeLetters))
	if err != nil {
		return "", err
	}
	digits, err := shared.RandInt(codeDigits)
	if err != nil {
		return "", err
	}
	return formatCode(codeLetters[letter], digits), nil
}

// GenerateUniqueCode generates codes until one is not held by any user,
// bounded by uniqueCodeAttempts. A candidate equal to excludeCode (the
// caller's own current code when regenerating) is skipped without a
// lookup.
//
// If every attempt collides, a deterministic-but-unpredictable fallback is
// used: a random letter with digits taken from the current timestamp,
// re-checked once against the store; if that also collides the last digit
// is perturbed and the code accepted unconditionally. The fallback can
// theoretically still collide; the storage layer's unique constraint is
// the final guard, and the path is logged so operators can spot abnormal
// contention.
func (s *StepUpService) GenerateUniqueCode(ctx context.Context, excludeCode string) (string, error) {
	repo := s.rm.Users(s.db)

	for attempt := 0; attempt < uniqueCodeAttempts; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return "", fmt.Errorf("generating code: %w", err)
		}
		if code == excludeCode {
			continue
		}
		taken, err := repo.CodeTaken(ctx, code, "")
		if err != nil {
			return "", fmt.Errorf("checking code availability: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	// Deterministic fallback: random letter, digits from the timestamp.
	letter, err := shared.RandInt(len(codeLetters))
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}
	digits := int(s.now().UnixMilli() % codeDigits)
	code := formatCode(codeLetters[letter], digits)

	s.logger.Warn(ctx, "access code generation fell back to timestamp digits",
		"attempts", uniqueCodeAttempts)

	if code != excludeCode {
		taken, err := repo.CodeTaken(ctx, code, "")
		if err != nil {
			// A timed-out lookup on the fallback path assumes availability
			// rather than failing the whole regeneration; anything else is
			// an infrastructure failure and propagates.
			if !errors.Is(err, context.DeadlineExceeded) {
				return "", fmt.Errorf("checking code availability: %w", err)
			}
			s.logger.Warn(ctx, "availability check timed out on fallback path, assuming available")
			return code, nil
		}
		if !taken {
			return code, nil
		}
	}

	// Perturb the last digit and accept. Rare, theoretically collidable;
	// the unique constraint on the code column catches the remainder.
	digits = (digits/10)*10 + (digits%10+1)%10
	return formatCode(codeLetters[letter], digits), nil
}

// SuggestAvailableCodes explores the neighborhood of baseCode and returns
// up to five codes not held by anyone other than excludeUserID. The digit
// neighborhood (±1..±20, wrapping in the 0–99999 space) is searched first,
// then adjacent letters (±1..±3, wrapping in the alphabet), stopping as
// soon as five suggestions are found.
func (s *StepUpService) SuggestAvailableCodes(ctx context.Context, baseCode string, excludeUserID string) ([]string, error) {
	if !IsValidCodeFormat(baseCode) {
		return nil, fmt.Errorf("suggesting codes: %w", common.ErrorInvalidCodeFormat)
	}

	letter := baseCode[0]
	num, err := strconv.Atoi(baseCode[1:])
	if err != nil {
		return nil, fmt.Errorf("suggesting codes: %w", err)
	}

	repo := s.rm.Users(s.db)
	found := make([]string, 0, suggestLimit)

	tryCandidate := func(code string) (bool, error) {
		taken, err := repo.CodeTaken(ctx, code, excludeUserID)
		if err != nil {
			return false, fmt.Errorf("checking code availability: %w", err)
		}
		if !taken {
			found = append(found, code)
		}
		return len(found) >= suggestLimit, nil
	}

	for delta := 1; delta <= suggestDigitRadius; delta++ {
		for _, d := range []int{delta, -delta} {
			candidate := formatCode(letter, wrapDigits(num+d))
			done, err := tryCandidate(candidate)
			if err != nil {
				return nil, err
			}
			if done {
				return found, nil
			}
		}
	}

	letterIdx := int(letter - 'A')
	for delta := 1; delta <= suggestLetterRadius; delta++ {
		for _, d := range []int{delta, -delta} {
			candidate := formatCode(codeLetters[wrapLetter(letterIdx+d)], num)
			done, err := tryCandidate(candidate)
			if err != nil {
				return nil, err
			}
			if done {
				return found, nil
			}
		}
	}

	return found, nil
}

func formatCode(letter byte, digits int) string {
	return fmt.Sprintf("%c%05d", letter, digits)
}

func wrapDigits(n int) int {
	n %= codeDigits
	if n < 0 {
		n += codeDigits
	}
	return n
}

func wrapLetter(n int) int {
	n %= len(codeLetters)
	if n < 0 {
		n += len(codeLetters)
	}
	return n
}
