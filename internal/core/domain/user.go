package domain

import (
	"errors"
	"time"
)

// Role is a closed-set capability tag used for authorization checks.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidGender = errors.New("invalid gender")

// ParseRole converts a raw string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleStudent, RoleTeacher:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// ParseRoles converts a list of raw strings, failing on the first unknown value.
func ParseRoles(raw []string) ([]Role, error) {
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// Gender is the fixed enumeration used by roster records.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender converts a raw string into a Gender.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", ErrInvalidGender
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// User is a roster record: a student, teacher or administrator of the
// college system. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MiddleName   string    `json:"middle_name,omitempty"`
	Gender       Gender    `json:"gender"`
	EmailAddress string    `json:"email_address,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	Disabled     bool      `json:"disabled"`
	Roles        []Role    `json:"roles"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
