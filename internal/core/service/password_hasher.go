package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps interactive logins in the low hundreds of milliseconds
// while remaining expensive enough against offline brute force.
const bcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. The salt is embedded in the
// digest, so Verify needs no extra state.
type BcryptHasher struct{}

func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{}
}

func (BcryptHasher) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
