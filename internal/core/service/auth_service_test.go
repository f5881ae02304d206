package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
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
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.EmailAddress == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateByEmail(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if fields.FirstName != nil {
		u.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		u.LastName = *fields.LastName
	}
	if fields.MiddleName != nil {
		u.MiddleName = *fields.MiddleName
	}
	if fields.Gender != nil {
		u.Gender = *fields.Gender
	}
	if fields.PhoneNumber != nil {
		u.PhoneNumber = *fields.PhoneNumber
	}
	if fields.Disabled != nil {
		u.Disabled = *fields.Disabled
	}
	if fields.Roles != nil {
		u.Roles = append([]domain.Role(nil), fields.Roles...)
	}
	r.users[u.Username] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	delete(r.users, u.Username)
	return nil
}

func newTestAuthService(t *testing.T, repo ports.UserRepository) *AuthService {
	t.Helper()
	tokens, err := NewTokenService(TokenConfig{Secret: "secret"})
	if err != nil {
		t.Fatalf("token service init failed: %v", err)
	}
	return NewAuthService(repo, tokens, 30*time.Minute, zerolog.Nop())
}

func registerInput(username string, roles ...domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Username:    username,
		Password:    "pass123",
		FirstName:   "Test",
		LastName:    "User",
		Gender:      domain.GenderFemale,
		PhoneNumber: "555-0100",
		Roles:       roles,
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), registerInput("alice", domain.RoleStudent))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	in := registerInput("", domain.RoleStudent)
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	in = registerInput("bob")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for empty role set, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), registerInput("bob", domain.RoleUser)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob", domain.RoleUser)); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), registerInput("carol", domain.RoleAdmin, domain.RoleTeacher)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "carol" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected roles claim: %v", claims.Roles)
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Fatalf("login token expiry not ~30m out: %v", remaining)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	_, _ = svc.Register(context.Background(), registerInput("dave", domain.RoleStudent))
	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIsIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	// An unknown username must produce the same error as a wrong password.
	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo)

	if _, err := svc.Register(context.Background(), registerInput("erin", domain.RoleTeacher)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users["erin"].Disabled = true

	if _, err := svc.Login(context.Background(), "erin", "pass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
}
