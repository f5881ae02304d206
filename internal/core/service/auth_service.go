package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
)

const defaultLoginTTL = 30 * time.Minute

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *TokenService
	loginTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, loginTTL time.Duration, log zerolog.Logger) *AuthService {
	if loginTTL <= 0 {
		loginTTL = defaultLoginTTL
	}
	return &AuthService{repo: repo, tokens: tokens, loginTTL: loginTTL, log: log}
}

// Register creates a new credential record. The password is hashed before it
// ever reaches the repository; the plaintext is not retained.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(in.Roles) == 0 {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		MiddleName:   in.MiddleName,
		Gender:       in.Gender,
		EmailAddress: in.EmailAddress,
		PhoneNumber:  in.PhoneNumber,
		Roles:        in.Roles,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and mints a bearer token with the login TTL.
// An unknown username, a wrong password and a disabled account all surface as
// the same domain.ErrInvalidCredentials so nothing about the account leaks.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a compare anyway so the miss is not observably faster.
			VerifyPassword(password, "")
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Roles, s.loginTTL)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}
