package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way hash of the plaintext. bcrypt embeds
// a fresh random salt per call, so the same input yields a different artifact
// every time.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored artifact.
// Malformed artifacts (corrupted storage, empty strings) fail closed: the
// result is false, never an error into the caller.
func VerifyPassword(plaintext, artifact string) bool {
	return bcrypt.CompareHashAndPassword([]byte(artifact), []byte(plaintext)) == nil
}
