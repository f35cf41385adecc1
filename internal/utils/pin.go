package utils

import "golang.org/x/crypto/bcrypt" // PIN hashing

// HashPin hashes a plaintext PIN for storage
func HashPin(pin string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPin reports whether pin matches the stored digest
func CheckPin(pin, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(pin)) == nil
}
