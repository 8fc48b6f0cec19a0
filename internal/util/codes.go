package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Ambiguous characters (0/O, 1/I/L) are excluded since codes are read out
// loud in classrooms.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateCode produces a human-readable join/invitation code of the given
// length.
func GenerateCode(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// GenerateAPIKey produces a 64-character hex secret.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// KeyHint returns the listing-safe tail of a secret.
func KeyHint(key string) string {
	if len(key) <= 4 {
		return key
	}
	return "..." + key[len(key)-4:]
}
