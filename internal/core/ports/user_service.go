package ports

import (
	"context"

	"github.com/platops/user-directory/internal/core/domain"
)

// CreateUserInput carries a validated create request.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Level    int
}

// UpdateUserInput carries a validated update request. Nil fields were absent
// from the request and must be left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Level    *int
}

// UserService defines the directory use cases.
type UserService interface {
	// Login verifies the credentials and issues an access token. Unknown
	// email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	// Report renders every account as CSV bytes. Access gating happens at
	// the transport boundary, not here.
	Report(ctx context.Context) ([]byte, error)
}
