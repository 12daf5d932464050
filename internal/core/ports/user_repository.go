package ports

import (
	"context"

	"github.com/platops/user-directory/internal/core/domain"
)

// UserPatch carries the optional fields of an update. Nil fields are left
// untouched in storage.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Level        *int
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Level == nil
}

// UserRepository defines persistence operations for user accounts.
// All lookups are keyed on the external opaque id, never on the store's
// internal record key.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	// Update applies the non-nil fields of patch and returns the post-update
	// record, or domain.ErrUserNotFound when no record matched.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	// Delete removes the record and returns it, or domain.ErrUserNotFound.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
