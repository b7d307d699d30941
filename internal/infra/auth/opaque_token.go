package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/service"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
)

const refreshTokenBytes = 32

type opaqueTokenGenerator struct {
	rand io.Reader
}

// NewOpaqueTokenGenerator returns a generator reading from crypto/rand.
func NewOpaqueTokenGenerator() service.OpaqueTokenGenerator {
	return &opaqueTokenGenerator{rand: rand.Reader}
}

// Generate returns 256 random bits, base64url encoded without padding.
func (g *opaqueTokenGenerator) Generate() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Digest returns the hex SHA-256 of token.
func (g *opaqueTokenGenerator) Digest(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
