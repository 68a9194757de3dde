package internal

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// SecureToken returns a URL-safe random token with n bytes of entropy,
// suitable for use as an API key.
func SecureToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read never fails on supported platforms.
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(buf)
}

// TokenFingerprint is a short non-reversible identifier for a secret
// token. Log this instead of the token itself.
func TokenFingerprint(token string) string {
	h := xxhash.Sum64String(token)
	return strconv.FormatUint(h, 16)
}
