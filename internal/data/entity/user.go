package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        int64    `db:"id"`
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FirstName string   `db:"first_name"`
	LastName  string   `db:"last_name"`
	Bio       *string  `db:"bio"`
	Role      UserRole `db:"role"`
	IsStaff   bool     `db:"is_staff"`
	// bcrypt hash of the last issued code, or the spent sentinel
	ConfirmationCode *string   `db:"confirmation_code"`
	DateJoined       time.Time `db:"date_joined"`
}

func (u *User) IsAdmin() bool {
	return u.IsStaff || u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
