package ports

// PasswordHasher produces salted one-way digests and verifies candidates
// against them in constant time with respect to content.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
