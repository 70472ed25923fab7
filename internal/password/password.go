// Package password wraps bcrypt for storing and checking user secrets.
// Plaintext never leaves this package boundary once hashed.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted bcrypt digest of plaintext. Each call produces a
// distinct digest even for identical input.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed or corrupt
// digest is a verification failure, never an error the caller can tell
// apart from a wrong password.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
