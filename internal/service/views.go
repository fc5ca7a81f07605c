package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"time"
)

// View types returned by the workout service. They mirror what the SPA
// renders: nested trees with exercise catalog fields joined in.

// WorkoutPlanView is a plan with its full workout tree.
type WorkoutPlanView struct {
	Plan     domain.WorkoutPlan `json:"plan"`
	Workouts []WorkoutView      `json:"workouts"`
}

// WorkoutView is one workout with its ordered prescriptions.
type WorkoutView struct {
	Workout   domain.Workout        `json:"workout"`
	Exercises []WorkoutExerciseView `json:"exercises"`
}

// WorkoutExerciseView joins a prescription with its catalog entry.
type WorkoutExerciseView struct {
	domain.WorkoutExercise
	Name            string `json:"name"`
	MuscleGroup     string `json:"muscle_group,omitempty"`
	EquipmentNeeded string `json:"equipment_needed,omitempty"`
	IsCompound      bool   `json:"is_compound"`
}

// PlanListView lists the user's own plans alongside shared templates.
type PlanListView struct {
	UserPlans     []domain.WorkoutPlan `json:"user_plans"`
	TemplatePlans []domain.WorkoutPlan `json:"template_plans"`
}

// WorkoutLogView is a completed session: header, derived volume, logged
// sets grouped per exercise in submission order, and any records the
// session produced.
type WorkoutLogView struct {
	LogID       uint                `json:"log_id"`
	WorkoutID   uint                `json:"workout_id"`
	WorkoutName string              `json:"workout_name"`
	CompletedAt time.Time           `json:"completed_at"`
	Duration    *int                `json:"duration,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	Rating      *int                `json:"rating,omitempty"`
	Volume      float64              `json:"volume"`
	Exercises   []LoggedExerciseView `json:"exercises"`
	// NewRecords holds records created by this logging call; empty on
	// plain reads.
	NewRecords []domain.PersonalRecord `json:"new_records,omitempty"`
}

// LoggedExerciseView groups the sets of one exercise within a log.
type LoggedExerciseView struct {
	ExerciseID uint            `json:"exercise_id"`
	Name       string          `json:"name"`
	Sets       []LoggedSetView `json:"sets"`
}

// LoggedSetView is one performed set.
type LoggedSetView struct {
	SetNumber int      `json:"set_number"`
	Reps      *int     `json:"reps,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// LogListView is a page of workout history.
type LogListView struct {
	Logs  []LogSummaryView `json:"logs"`
	Total int64            `json:"total"`
}

// LogSummaryView is a history row with its derived volume.
type LogSummaryView struct {
	domain.WorkoutLog
	WorkoutName string  `json:"workout_name"`
	Volume      float64 `json:"volume"`
}

// TodayView is the suggested workout for the current weekday.
type TodayView struct {
	Plan      *domain.WorkoutPlan `json:"plan,omitempty"`
	Workout   *domain.Workout     `json:"workout,omitempty"`
	Exercises []TodayExerciseView `json:"exercises,omitempty"`
	Message   string              `json:"message,omitempty"`
}

// TodayExerciseView adds the most recent logged performance to a
// prescription so the user can aim past it.
type TodayExerciseView struct {
	WorkoutExerciseView
	PreviousPerformance string `json:"previous_performance,omitempty"`
}
