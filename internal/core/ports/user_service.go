package ports

import (
	"context"

	"github.com/campusops/college-roster/internal/core/domain"
)

// CreateUserInput carries the full roster record for the admin create endpoint.
type CreateUserInput struct {
	Username     string
	Password     string
	FirstName    string
	LastName     string
	MiddleName   string
	Gender       domain.Gender
	EmailAddress string
	PhoneNumber  string
	Disabled     bool
	Roles        []domain.Role
}

// UserRecord is a flat row view of a user, used by the records endpoint and
// the CSV export. Roles are joined into a single comma-separated column.
type UserRecord struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MiddleName   string `json:"middle_name"`
	Gender       string `json:"gender"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	Disabled     bool   `json:"disabled"`
	Roles        string `json:"roles"`
}

// UserService defines the roster use cases.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Records(ctx context.Context) ([]UserRecord, error)
	// ExportCSV renders all users as a CSV document. Rendered bytes are
	// cached for a short TTL to keep repeated downloads off the store.
	ExportCSV(ctx context.Context) ([]byte, error)
	UpdateByEmail(ctx context.Context, email string, fields UpdateUserFields) (*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
