package db

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUSER  UserRole = "USER"
	UserRoleADMIN UserRole = "ADMIN"
)

type User struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Role        UserRole
	CreatedAt   time.Time
}
