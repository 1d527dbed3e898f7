package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PasswordAlphabet leaves out characters that are easy to misread.
	PasswordAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	minPasswordLength = 8
	maxPasswordDraws  = 64
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
	errPasswordDraws  = errors.New("could not draw a mixed-case password")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// TemporaryPassword draws a password of at least eight characters that
// contains an upper case letter, a lower case letter and a digit, so it
// passes the login password policy.
func TemporaryPassword(length int) (string, error) {
	if length < minPasswordLength {
		length = minPasswordLength
	}
	for draw := 0; draw < maxPasswordDraws; draw++ {
		candidate, err := RandomString(length, PasswordAlphabet)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(candidate, upperAlphabet) &&
			strings.ContainsAny(candidate, lowerAlphabet) &&
			strings.ContainsAny(candidate, digitAlphabet) {
			return candidate, nil
		}
	}
	return "", errPasswordDraws
}
