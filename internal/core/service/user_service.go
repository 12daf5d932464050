package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/platops/user-directory/internal/core/domain"
	"github.com/platops/user-directory/internal/core/ports"
)

// reportFields is the column order of the CSV export. The password column
// carries the stored hash, matching what GET /users already exposes.
var reportFields = []string{"id", "name", "email", "password", "level"}

// UserService implements the directory use cases: login, CRUD, and report
// export. Every call reconstructs its working state from the store; the
// service itself holds nothing mutable between requests.
type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	renderer ports.ReportRenderer
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, renderer ports.ReportRenderer, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		renderer: renderer,
		logger:   logger,
	}
}

// Login verifies the credentials and issues an access token. Unknown email
// and wrong password collapse into the same error so callers cannot
// enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create generates a fresh opaque id, hashes the password, and persists the
// record. Uniqueness of id and email is enforced by the store's indexes.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("password hashing failed")
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Level:        input.Level,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Int("level", user.Level).Msg("user created")
	return user, nil
}

// Update applies only the supplied fields and returns the post-update record.
// A supplied password is re-hashed before it reaches the store.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	patch := ports.UserPatch{
		Name:  input.Name,
		Email: input.Email,
		Level: input.Level,
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("password hashing failed")
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return user, nil
}

// Report renders every account as CSV. The caller's privilege has already
// been checked at the transport boundary.
func (s *UserService) Report(ctx context.Context) ([]byte, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, len(users))
	for i, u := range users {
		records[i] = map[string]string{
			"id":       u.ID,
			"name":     u.Name,
			"email":    u.Email,
			"password": u.PasswordHash,
			"level":    strconv.Itoa(u.Level),
		}
	}

	data, err := s.renderer.Render(reportFields, records)
	if err != nil {
		s.logger.Error().Err(err).Int("records", len(records)).Msg("report rendering failed")
		return nil, err
	}
	return data, nil
}
