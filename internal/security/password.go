package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the application has always stored
// hashes with; verification reads the cost from the hash itself.
const DefaultBcryptCost = 10

func HashPassword(password string, cost int) ([]byte, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed or truncated hash verifies false rather than erroring.
func VerifyPassword(password string, encodedHash []byte) bool {
	return bcrypt.CompareHashAndPassword(encodedHash, []byte(password)) == nil
}
