// Package auth provides the credential primitives of the service:
// password digests, signed session tokens and the session cookie.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted, cost-parameterized one-way digest of the
// password. The digest is self-describing: it embeds its own salt and cost,
// so no extra columns are needed to verify it later.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored digest.
// A malformed or corrupted digest yields false, indistinguishable from a
// wrong password.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
