package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/platops/user-directory/internal/core/domain"
	"github.com/platops/user-directory/internal/core/ports"
	"github.com/platops/user-directory/internal/infrastructure/report"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email || u.ID == user.ID {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Level != nil {
		u.Level = *patch.Level
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

func newTestService(repo ports.UserRepository) *UserService {
	tokens := NewTokenService("secret", time.Hour)
	return NewUserService(repo, NewBcryptHasher(), tokens, report.NewCSVRenderer(), zerolog.Nop())
}

func mustCreate(t *testing.T, svc *UserService, input ports.CreateUserInput) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return user
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{
		Name:     "Alice Example",
		Email:    "alice@x.com",
		Password: "longenough1",
		Level:    3,
	})

	if user.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if user.PasswordHash == "" || user.PasswordHash == "longenough1" {
		t.Fatalf("password must be stored as a hash, got %q", user.PasswordHash)
	}
	if !NewBcryptHasher().Verify("longenough1", user.PasswordHash) {
		t.Fatalf("stored hash does not verify against the plaintext")
	}

	stored, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Name != "Alice Example" || stored.Email != "alice@x.com" || stored.Level != 3 {
		t.Fatalf("unexpected stored record: %+v", stored)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	mustCreate(t, svc, ports.CreateUserInput{Name: "Alice", Email: "alice@x.com", Password: "longenough1", Level: 1})

	_, err := svc.Create(context.Background(), ports.CreateUserInput{Name: "Other", Email: "alice@x.com", Password: "longenough2", Level: 2})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{Name: "Carol", Email: "carol@x.com", Password: "s3cretpass", Level: 5})

	token, err := svc.Login(context.Background(), "carol@x.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Name != "Carol" || claims.Level != 5 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	mustCreate(t, svc, ports.CreateUserInput{Name: "Dave", Email: "dave@x.com", Password: "goodpass1", Level: 1})

	_, wrongPass := svc.Login(context.Background(), "dave@x.com", "badpass99")
	_, noSuchEmail := svc.Login(context.Background(), "ghost@x.com", "whatever1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noSuchEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noSuchEmail)
	}
	if wrongPass.Error() != noSuchEmail.Error() {
		t.Fatalf("failure messages must be identical: %q vs %q", wrongPass, noSuchEmail)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{Name: "Alice", Email: "alice@x.com", Password: "longenough1", Level: 3})
	originalHash := user.PasswordHash

	name := "Bob"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Name != "Bob" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if updated.Email != "alice@x.com" || updated.Level != 3 || updated.PasswordHash != originalHash {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{Name: "Alice", Email: "alice@x.com", Password: "longenough1", Level: 3})

	password := "newpassword2"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Password: &password})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.PasswordHash == "newpassword2" || updated.PasswordHash == user.PasswordHash {
		t.Fatalf("expected a fresh hash, got %q", updated.PasswordHash)
	}
	if !NewBcryptHasher().Verify("newpassword2", updated.PasswordHash) {
		t.Fatalf("new hash does not verify against the new password")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	name := "Bob"
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateUserInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{Name: "Alice", Email: "alice@x.com", Password: "longenough1", Level: 3})

	deleted, err := svc.Delete(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != user.ID {
		t.Fatalf("expected the removed record back, got %+v", deleted)
	}

	if _, err := svc.Get(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Report(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user := mustCreate(t, svc, ports.CreateUserInput{Name: "Alice Example", Email: "alice@x.com", Password: "longenough1", Level: 3})

	data, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	csv := string(data)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "id,name,email,password,level" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], user.ID) || !strings.Contains(lines[1], "alice@x.com") {
		t.Fatalf("row missing record data: %q", lines[1])
	}
	if strings.Contains(csv, "longenough1") {
		t.Fatalf("report must carry the hash, not the plaintext")
	}
}

func TestUserService_Report_EmptyDirectory(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	if _, err := svc.Report(context.Background()); err == nil {
		t.Fatalf("expected rendering error with no records")
	}
}
