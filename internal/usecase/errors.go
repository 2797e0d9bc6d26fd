package usecase

import (
	"errors"

	"yamdb/internal/permission"
	"yamdb/pkg/utils"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrConflict        = errors.New("conflict")
	// ErrDuplicateIdentity: the username or email already belongs to another account.
	ErrDuplicateIdentity = errors.New("username or email is already taken")
	ErrInvalidCode       = errors.New("invalid confirmation code")
)

// ValidationError carries field name -> message pairs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func validateRequest(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// authorize runs the contribution rules for a change to target.
func authorize(actor *permission.Actor, method string, target permission.Owned) error {
	req := permission.Request{Actor: actor, Method: method, Target: target}
	if permission.ContributionAdminModeratorOrReadOnly(req) {
		return nil
	}
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
