package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

const (
	// DefaultPasswordLength is used when no length is configured.
	DefaultPasswordLength = 16

	// DefaultCharset is ASCII letters, digits and punctuation.
	DefaultCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// GeneratePassword returns length characters drawn uniformly from charset.
// Duplicate characters in charset are ignored so they do not bias the result.
func GeneratePassword(length int, charset string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: got %d", kerrors.ErrInvalidLength, length)
	}

	alphabet := uniqueRunes(charset)
	if len(alphabet) == 0 {
		return "", fmt.Errorf("%w: charset is empty", kerrors.ErrInvalidCharset)
	}

	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteRune(alphabet[n.Int64()])
	}

	return b.String(), nil
}

func uniqueRunes(s string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
