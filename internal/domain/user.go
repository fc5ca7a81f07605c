package domain

import (
	"time"
)

// User represents an account in the system. Regular users own their
// workout history; admins additionally curate the exercise library and
// workout templates.
type User struct {
	ID           uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose this via JSON
	Weight       *float64  `json:"weight,omitempty"`  // Current body weight, mirrors the latest weight log
	Height       *float64  `json:"height,omitempty"`
	Goal         string    `json:"goal,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// WeightLog is one body-weight measurement for a user.
type WeightLog struct {
	ID       uint      `gorm:"column:weight_id;primaryKey" json:"weight_id"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	Weight   float64   `gorm:"not null" json:"weight"`
	LoggedAt time.Time `gorm:"not null" json:"logged_at"`
	Notes    string    `json:"notes,omitempty"`
}

func (WeightLog) TableName() string { return "weight_logs" }
