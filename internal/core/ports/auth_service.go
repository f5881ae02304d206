package ports

import (
	"context"

	"github.com/campusops/college-roster/internal/core/domain"
)

// RegisterInput carries the data needed to create a credential record.
type RegisterInput struct {
	Username     string
	Password     string
	FirstName    string
	LastName     string
	MiddleName   string
	Gender       domain.Gender
	EmailAddress string
	PhoneNumber  string
	Roles        []domain.Role
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the credentials and mints a bearer token. Every
	// credential failure, including an unknown username, surfaces as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
