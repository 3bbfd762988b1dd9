// Package passwords provides one-way hashing and verification of user passwords.
package passwords

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of the given plaintext password.
// The cost factor is bcrypt.DefaultCost (10); the salt is embedded in the hash.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the given bcrypt hash.
// It fails closed: a malformed hash yields false rather than an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt hash of a throwaway value.
// Login compares against it when the user is unknown so that the cost of a
// failed lookup matches the cost of a failed password check.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
