package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost matches the work factor the hosted service has always used.
// Raising it invalidates no existing hashes but slows new signups.
const hashCost = 10

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
// A malformed hash counts as a mismatch, never an error.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
