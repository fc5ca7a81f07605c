package domain

import (
	"time"
)

// WorkoutPlan is a named container of workouts. A plan either belongs to
// one user (IsTemplate=false) or is a shared template (IsTemplate=true).
// Templates are read-only to plan mutation; users copy them instead.
type WorkoutPlan struct {
	ID          uint      `gorm:"column:plan_id;primaryKey" json:"plan_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency,omitempty"` // e.g. "3 days/week"
	Goal        string    `json:"goal,omitempty"`
	IsTemplate  bool      `gorm:"not null;default:false" json:"is_template"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WorkoutPlan) TableName() string { return "workout_plans" }

// Workout is one named session within a plan, optionally scheduled on a
// day of the week (1=Monday .. 7=Sunday).
type Workout struct {
	ID          uint   `gorm:"column:workout_id;primaryKey" json:"workout_id"`
	PlanID      uint   `gorm:"not null;index" json:"plan_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	DayOfWeek   *int   `json:"day_of_week,omitempty"`
}

func (Workout) TableName() string { return "workouts" }

// WorkoutExercise is an exercise prescription inside a workout. OrderNum
// is a dense 1..N sequence within the workout, reassigned in submission
// order on every plan mutation.
type WorkoutExercise struct {
	ID         uint   `gorm:"column:workout_exercise_id;primaryKey" json:"workout_exercise_id"`
	WorkoutID  uint   `gorm:"not null;index" json:"workout_id"`
	ExerciseID uint   `gorm:"not null;index" json:"exercise_id"`
	Sets       int    `gorm:"not null" json:"sets"`
	Reps       *int   `json:"reps,omitempty"`
	RestPeriod *int   `json:"rest_period,omitempty"` // seconds
	Notes      string `json:"notes,omitempty"`
	OrderNum   int    `gorm:"not null" json:"order_num"`
}

func (WorkoutExercise) TableName() string { return "workout_exercises" }
