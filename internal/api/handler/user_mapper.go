package handler

import (
	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest, gender domain.Gender, roles []domain.Role) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Gender:       gender,
		EmailAddress: req.EmailAddress,
		PhoneNumber:  req.PhoneNumber,
		Disabled:     req.Disabled,
		Roles:        roles,
	}
}

func toUpdateFields(req updateUserRequest) (ports.UpdateUserFields, error) {
	fields := ports.UpdateUserFields{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
		Disabled:    req.Disabled,
	}
	if req.Gender != nil {
		gender, err := domain.ParseGender(*req.Gender)
		if err != nil {
			return ports.UpdateUserFields{}, err
		}
		fields.Gender = &gender
	}
	if req.Roles != nil {
		roles, err := domain.ParseRoles(req.Roles)
		if err != nil {
			return ports.UpdateUserFields{}, err
		}
		fields.Roles = roles
	}
	return fields, nil
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MiddleName:   u.MiddleName,
		Gender:       string(u.Gender),
		EmailAddress: u.EmailAddress,
		PhoneNumber:  u.PhoneNumber,
		Disabled:     u.Disabled,
		Roles:        roles,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func toUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}
