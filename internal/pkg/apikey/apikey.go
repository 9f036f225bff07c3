package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// keyBytes is the entropy of a generated key; the hex form is twice as long.
const keyBytes = 32

// New generates a cryptographically random 64-character hex API key.
func New() (string, error) {
	b := make([]byte, keyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
