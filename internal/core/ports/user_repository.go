package ports

import (
	"context"

	"github.com/campusops/college-roster/internal/core/domain"
)

// UpdateUserFields carries a partial update. Nil fields are left untouched,
// mirroring a document-store $set with only the provided keys.
type UpdateUserFields struct {
	FirstName   *string
	LastName    *string
	MiddleName  *string
	Gender      *domain.Gender
	PhoneNumber *string
	Disabled    *bool
	Roles       []domain.Role
}

// Empty reports whether the update carries no fields at all.
func (f UpdateUserFields) Empty() bool {
	return f.FirstName == nil && f.LastName == nil && f.MiddleName == nil &&
		f.Gender == nil && f.PhoneNumber == nil && f.Disabled == nil && f.Roles == nil
}

// UserRepository defines persistence operations for roster records. It doubles
// as the credential store: FindByUsername is the single lookup the auth flow
// performs per request.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateByEmail applies a partial update and returns the updated record.
	// A zero-modification update reports domain.ErrUserNotFound, matching the
	// observed "not found or no update needed" behavior.
	UpdateByEmail(ctx context.Context, email string, fields UpdateUserFields) (*domain.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
