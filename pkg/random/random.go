// Package random generates unguessable strings for OAuth state values.
package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

type RandomGenerator interface {
	// String returns a base64url-encoded string built from byteLen
	// random bytes.
	String(byteLen int64) (string, error)
}

type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (r *Random) String(byteLen int64) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
