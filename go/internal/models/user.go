package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the system-wide role of a user, separate from league roles
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// User represents a user in the system
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may administer competitions and results
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
