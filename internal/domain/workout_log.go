package domain

import (
	"time"
)

// WorkoutLog is the immutable header of one completed workout session.
// It is created together with its ExerciseLogs in a single transaction
// and is never partially written.
type WorkoutLog struct {
	ID          uint      `gorm:"column:log_id;primaryKey" json:"log_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	WorkoutID   uint      `gorm:"not null;index" json:"workout_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	Duration    *int      `json:"duration,omitempty"` // minutes
	Notes       string    `json:"notes,omitempty"`
	Rating      *int      `json:"rating,omitempty"` // 1-5
}

func (WorkoutLog) TableName() string { return "workout_logs" }

// ExerciseLog is one logged set belonging to a WorkoutLog. SetNumber is
// 1-indexed in the order sets were performed.
type ExerciseLog struct {
	ID         uint     `gorm:"column:exercise_log_id;primaryKey" json:"exercise_log_id"`
	LogID      uint     `gorm:"not null;index" json:"log_id"`
	ExerciseID uint     `gorm:"not null;index" json:"exercise_id"`
	SetNumber  int      `gorm:"not null" json:"set_number"`
	Reps       *int     `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (ExerciseLog) TableName() string { return "exercise_logs" }
