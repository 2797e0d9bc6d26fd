package request

import "yamdb/internal/data/entity"

type CreateUserRequest struct {
	Username  string          `json:"username" validate:"required,max=150,username"`
	Email     string          `json:"email" validate:"required,max=254,email"`
	FirstName string          `json:"first_name" validate:"max=150"`
	LastName  string          `json:"last_name" validate:"max=150"`
	Bio       *string         `json:"bio,omitempty"`
	Role      entity.UserRole `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
}

// AsUpdate turns a full replacement body (PUT) into an update touching every field.
func (r CreateUserRequest) AsUpdate() UpdateUserRequest {
	update := UpdateUserRequest{
		Username:  &r.Username,
		Email:     &r.Email,
		FirstName: &r.FirstName,
		LastName:  &r.LastName,
		Bio:       r.Bio,
	}
	if r.Role != "" {
		update.Role = &r.Role
	}
	return update
}

type UpdateUserRequest struct {
	Username  *string          `json:"username,omitempty" validate:"omitempty,max=150,username"`
	Email     *string          `json:"email,omitempty" validate:"omitempty,max=254,email"`
	FirstName *string          `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string          `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Bio       *string          `json:"bio,omitempty"`
	Role      *entity.UserRole `json:"role,omitempty" validate:"omitempty,oneof=user moderator admin"`
}
