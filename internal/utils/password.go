package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alnumChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Charset returns the characters for a named charset: "alnum" or "ascii"
// (alnum plus printable punctuation).
func Charset(name string) (string, error) {
	switch name {
	case "", "alnum":
		return alnumChars, nil
	case "ascii":
		return alnumChars + symbolChars, nil
	default:
		return "", fmt.Errorf("unknown charset %q", name)
	}
}

// GeneratePassword returns length characters drawn uniformly from charset
// using crypto/rand.
func GeneratePassword(length int, charset string) ([]byte, error) {
	if length < MinPasswordLength {
		return nil, fmt.Errorf("password length %d is below the minimum of %d", length, MinPasswordLength)
	}
	chars, err := Charset(charset)
	if err != nil {
		return nil, err
	}

	limit := big.NewInt(int64(len(chars)))
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}
		password[i] = chars[n.Int64()]
	}
	return password, nil
}
