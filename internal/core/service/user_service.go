package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
)

// ExportCache abstracts the short-lived cache for rendered CSV exports (Redis).
type ExportCache interface {
	// Get returns the cached bytes, or ok=false on a miss. Cache errors are
	// swallowed by the service; the export falls back to a fresh render.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
}

const csvCacheKey = "users"

var csvHeader = []string{
	"_id", "username", "first_name", "last_name", "middle_name",
	"gender", "email_address", "phone_number", "disabled", "roles",
}

// UserService implements the roster use cases.
type UserService struct {
	repo    ports.UserRepository
	exports ExportCache
	log     zerolog.Logger
}

func NewUserService(repo ports.UserRepository, exports ExportCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, exports: exports, log: log}
}

// Create inserts a full roster record. The password is hashed on the way in.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
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
		Disabled:     in.Disabled,
		Roles:        in.Roles,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Records returns all users as flat rows, the record-oriented view the
// dataframe endpoint serves.
func (s *UserService) Records(ctx context.Context) ([]ports.UserRecord, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]ports.UserRecord, len(users))
	for i, u := range users {
		records[i] = toRecord(u)
	}
	return records, nil
}

// ExportCSV renders all users as CSV. The rendered document is cached so
// repeated downloads within the TTL do not hit the store.
func (s *UserService) ExportCSV(ctx context.Context) ([]byte, error) {
	if data, ok, err := s.exports.Get(ctx, csvCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("export cache read failed, rendering fresh")
	} else if ok {
		return data, nil
	}

	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.ID, r.Username, r.FirstName, r.LastName, r.MiddleName,
			r.Gender, r.EmailAddress, r.PhoneNumber, strconv.FormatBool(r.Disabled), r.Roles,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if err := s.exports.Set(ctx, csvCacheKey, data); err != nil {
		s.log.Warn().Err(err).Msg("export cache write failed")
	}
	return data, nil
}

func (s *UserService) UpdateByEmail(ctx context.Context, email string, fields ports.UpdateUserFields) (*domain.User, error) {
	if fields.Empty() {
		return nil, domain.ErrUserNotFound
	}
	updated, err := s.repo.UpdateByEmail(ctx, email, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", email).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}

func toRecord(u *domain.User) ports.UserRecord {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = string(r)
	}
	return ports.UserRecord{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MiddleName:   u.MiddleName,
		Gender:       string(u.Gender),
		EmailAddress: u.EmailAddress,
		PhoneNumber:  u.PhoneNumber,
		Disabled:     u.Disabled,
		Roles:        strings.Join(names, ","),
	}
}
