// Package credential hashes and verifies passwords.
//
// A stored credential is a single opaque string "salt:digest" where both
// parts are raw URL-safe base64. The digest is argon2id over the plaintext
// and a fresh 16-byte random salt, so two hashes of the same password are
// never byte-equal.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, per current OWASP guidance.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	saltLen      = 16
	digestLen    = 32
)

const delimiter = ":"

// Hash derives a stored credential from a plaintext password. It succeeds
// for any input, including the empty string.
func Hash(password string) string {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		panic("credential: reading random salt: " + err.Error())
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, digestLen)

	return base64.RawURLEncoding.EncodeToString(salt) + delimiter +
		base64.RawURLEncoding.EncodeToString(digest)
}

// Verify reports whether password matches the stored credential. A
// malformed credential verifies false; Verify never fails.
func Verify(password, credential string) bool {
	parts := strings.Split(credential, delimiter)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	stored, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	if len(salt) == 0 || len(stored) != digestLen {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, digestLen)
	return subtle.ConstantTimeCompare(computed, stored) == 1
}
