package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext credential using bcrypt. Agent passwords
// are only ever persisted in this form.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
