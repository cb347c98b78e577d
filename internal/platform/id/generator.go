package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// Generator creates opaque IDs for entities exposed over the API.
type Generator interface {
	NewID() (string, error)
}

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// RandomGenerator produces 26-character lowercase base32 ids from 16
// random bytes. Lowercase keeps ids stable through URL paths and logs.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return strings.ToLower(encoding.EncodeToString(buf)), nil
}
