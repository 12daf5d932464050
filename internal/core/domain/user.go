package domain

import "errors"

// Privilege levels are integer ranks, 1 (lowest) to 5 (highest). Only the top
// rank may export the user report. Level 0 is accepted by the create schema
// but carries no privileges.
const (
	LevelMin    = 1
	LevelMax    = 5
	LevelExport = 5
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// User is the single persisted entity: one account in the directory.
// ID is an externally issued opaque identifier, unique alongside Email.
// PasswordHash holds the bcrypt digest of the password, never the plaintext.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Level        int    `json:"level"`
}
