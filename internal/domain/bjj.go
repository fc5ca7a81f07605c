package domain

import (
	"time"
)

// BjjSession is one logged grappling session. Independent of workout
// logging; no invariants beyond ownership.
type BjjSession struct {
	ID                  uint      `gorm:"column:session_id;primaryKey" json:"session_id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	SessionDate         time.Time `gorm:"not null" json:"session_date"`
	Duration            int       `gorm:"not null" json:"duration"` // minutes
	TechniquesPracticed string    `json:"techniques_practiced,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	Rating              *int      `json:"rating,omitempty"`
}

func (BjjSession) TableName() string { return "bjj_sessions" }
