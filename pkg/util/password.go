package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 12 keeps hashing around 250ms on current hardware, slow
// enough to blunt offline guessing without dragging down login latency.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of a plain text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain text password produced the stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
