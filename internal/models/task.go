package models

import (
	"time"
)

// TaskStatus values match what the dashboard renders: open, in
// progress, done.
type TaskStatus int

const (
	TaskOpen       TaskStatus = 0
	TaskInProgress TaskStatus = 1
	TaskDone       TaskStatus = 2
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s >= TaskOpen && s <= TaskDone
}

type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	DueDate     time.Time  `json:"duedate" gorm:"not null"`
	Status      TaskStatus `json:"status" gorm:"not null;default:0"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
