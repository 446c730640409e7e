package models

import (
	"time"
)

// LoginAttempt tracks consecutive failed logins for one
// (username, address) pair. Rows are created on the first failure and
// reused afterwards; a successful login resets them in place.
type LoginAttempt struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"type:varchar(255);not null;uniqueIndex:idx_login_attempts_key"`
	Address     string     `json:"address" gorm:"type:varchar(45);not null;uniqueIndex:idx_login_attempts_key"`
	Attempts    int        `json:"attempts" gorm:"not null"`
	LastAttempt time.Time  `json:"last_attempt" gorm:"not null"`
	LockedUntil *time.Time `json:"locked_until"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
