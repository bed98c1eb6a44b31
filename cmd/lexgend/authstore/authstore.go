// Package authstore hashes and verifies the daemon's API keys at rest,
// grounded on tunaq's server/tunas package, which runs every stored user
// password through bcrypt.GenerateFromPassword at cost 14 before it ever
// touches disk.
package authstore

import "golang.org/x/crypto/bcrypt"

// cost matches tunas.go's password hashing cost; bcrypt's own recommended
// default is 10, but the teacher settled on 14 and we keep that choice.
const cost = 14

// Hash returns the bcrypt hash of an API key secret, suitable for storing
// in place of the secret itself.
func Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether secret matches the previously stored hash.
func Verify(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
