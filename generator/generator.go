package generator

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// RandomTokenType is a non empty random token
type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateSecureToken creates a 32 byte hex encoded token,
// this is the plaintext handed out to the account holder -
// only its digest may ever hit the database
func (*RandomTokenGenerator) CreateSecureToken() RandomTokenType {
	return CreateSecureTokenWithSize(32)
}

func CreateSecureTokenWithSize(size int) RandomTokenType {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(hex.EncodeToString(b))
}

// DigestToken returns the sha256 hex digest of a plaintext token
func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
