package models

import (
	"time"
)

// Role is the access level of a user. Stored as an integer; 0 is
// reserved so that a zero value never grants access by accident.
type Role int

const (
	RoleUnset    Role = 0
	RoleStandard Role = 1
	RoleAdmin    Role = 2
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r >= RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleStandard:
		return "standard"
	case RoleAdmin:
		return "admin"
	default:
		return "unset"
	}
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	PasswordSalt string    `json:"-" gorm:"type:varchar(64);not null"`
	Role         Role      `json:"role" gorm:"not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
