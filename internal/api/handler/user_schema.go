package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations without a body to return.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createUserRequest struct {
	Username     string   `json:"username"      validate:"required"`
	Password     string   `json:"password"      validate:"required"`
	FirstName    string   `json:"first_name"    validate:"required"`
	LastName     string   `json:"last_name"     validate:"required"`
	MiddleName   string   `json:"middle_name"`
	Gender       string   `json:"gender"        validate:"required,oneof=male female"`
	EmailAddress string   `json:"email_address" validate:"omitempty,email"`
	PhoneNumber  string   `json:"phone_number"  validate:"required"`
	Disabled     bool     `json:"disabled"`
	Roles        []string `json:"roles"         validate:"required,min=1,dive,oneof=admin user student teacher"`
}

// updateUserRequest carries a partial update; absent fields stay untouched.
type updateUserRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	MiddleName  *string  `json:"middle_name"`
	Gender      *string  `json:"gender"       validate:"omitempty,oneof=male female"`
	PhoneNumber *string  `json:"phone_number"`
	Disabled    *bool    `json:"disabled"`
	Roles       []string `json:"roles"        validate:"omitempty,min=1,dive,oneof=admin user student teacher"`
}

// --- Response types ---

// userResponse is the transport view of a roster record. It is intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes. The password hash never appears here.
type userResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MiddleName   string    `json:"middle_name,omitempty"`
	Gender       string    `json:"gender"`
	EmailAddress string    `json:"email_address,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	Disabled     bool      `json:"disabled"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
