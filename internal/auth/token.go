package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// opaqueTokenBytes is the entropy of verification/reset/refresh tokens.
// 32 bytes is double the 128-bit minimum for single-use credentials.
const opaqueTokenBytes = 32

// GenerateOpaqueToken returns a cryptographically random URL-safe token for
// email verification, password reset and refresh flows. These are not JWTs:
// they carry no claims and are only meaningful against their database row.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
