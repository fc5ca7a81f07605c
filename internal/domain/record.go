package domain

import (
	"time"
)

// PersonalRecord claims that Weight is the heaviest known load the user
// moved for exactly Reps repetitions of an exercise as of AchievedAt.
// History is additive: superseded records are never deleted or flagged,
// so "current PR for N reps" is always a derived MAX query.
type PersonalRecord struct {
	ID         uint      `gorm:"column:pr_id;primaryKey" json:"pr_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ExerciseID uint      `gorm:"not null;index" json:"exercise_id"`
	Weight     float64   `gorm:"not null" json:"weight"`
	Reps       int       `gorm:"not null" json:"reps"`
	AchievedAt time.Time `gorm:"not null" json:"achieved_at"`
	Notes      string    `json:"notes,omitempty"`
}

func (PersonalRecord) TableName() string { return "personal_records" }
