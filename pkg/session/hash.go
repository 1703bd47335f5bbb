package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of a raw bearer token.
// Deterministic and unkeyed: the raw token is high-entropy and never
// persisted, so the digest alone keeps database read access from being
// enough to replay a session.
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
