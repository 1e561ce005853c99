package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength is the number of hex characters kept from the digest.
const fingerprintLength = 8

// Fingerprint reduces a secret to a short, stable digest prefix. Logging the
// fingerprint identifies which secret is configured without revealing it.
func Fingerprint(secret string) string {
	digest := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(digest[:])[:fingerprintLength]
}
