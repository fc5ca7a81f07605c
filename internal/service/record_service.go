package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrRecordNotFound   = errors.New("personal record not found")
)

// NotARecordError rejects a candidate that does not beat the current
// best. The current record is carried so callers can surface it.
type NotARecordError struct {
	Current *domain.PersonalRecord
}

func (e *NotARecordError) Error() string {
	return fmt.Sprintf("Not a personal record. Current record is %v lbs for %d reps.",
		e.Current.Weight, e.Current.Reps)
}

// RecordEvaluation is the outcome of a PR check. Superseded is the
// record the candidate beats, nil when the candidate is the first for
// its (exercise, reps) pair or when it is not a new record at all.
type RecordEvaluation struct {
	IsNewRecord bool
	Superseded  *domain.PersonalRecord
}

// AddRecordInput is a directly-entered personal record, not linked to a
// workout log.
type AddRecordInput struct {
	ExerciseID uint       `json:"exercise_id" binding:"required"`
	Weight     float64    `json:"weight" binding:"required,gt=0"`
	Reps       int        `json:"reps" binding:"required,gt=0"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// RecordService decides whether a lift qualifies as a personal record
// and manages directly-entered records.
//
// A candidate competes only against records with exactly the same rep
// count: heavier weight at fewer reps never supersedes a lighter record
// at more reps. Equal weight is not a new record. Superseded rows are
// kept; the current best is always derived by a MAX query at read time.
type RecordService interface {
	// Evaluate is read-only; callers decide whether to persist.
	Evaluate(ctx context.Context, userID, exerciseID uint, weight float64, reps int) (*RecordEvaluation, error)
	AddRecord(ctx context.Context, userID uint, input AddRecordInput) (*domain.PersonalRecord, error)
	GetRecordsForExercise(ctx context.Context, userID, exerciseID uint) (*domain.Exercise, []domain.PersonalRecord, error)
	DeleteRecord(ctx context.Context, userID, prID uint) error
}

// recordService implements the RecordService interface.
type recordService struct {
	recordRepo   repository.RecordRepository
	exerciseRepo repository.ExerciseRepository
}

// NewRecordService creates a new instance of recordService.
func NewRecordService(recordRepo repository.RecordRepository, exerciseRepo repository.ExerciseRepository) RecordService {
	return &recordService{
		recordRepo:   recordRepo,
		exerciseRepo: exerciseRepo,
	}
}

// Evaluate checks a candidate (weight, reps) against the user's existing
// best for the exact rep count. Strictly greater wins; equal weight is
// not a record. "No existing record" is a normal outcome, not an error.
func (s *recordService) Evaluate(ctx context.Context, userID, exerciseID uint, weight float64, reps int) (*RecordEvaluation, error) {
	if weight <= 0 || reps <= 0 {
		return nil, fmt.Errorf("%w: weight and reps must be positive", ErrValidationFailed)
	}

	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	best, err := s.recordRepo.BestForReps(ctx, userID, exerciseID, reps)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &RecordEvaluation{IsNewRecord: true}, nil
		}
		return nil, err
	}

	if weight > best.Weight {
		return &RecordEvaluation{IsNewRecord: true, Superseded: best}, nil
	}
	return &RecordEvaluation{IsNewRecord: false, Superseded: best}, nil
}

// AddRecord persists a directly-entered PR after evaluation. A dominated
// candidate is rejected with NotARecordError carrying the current best.
func (s *recordService) AddRecord(ctx context.Context, userID uint, input AddRecordInput) (*domain.PersonalRecord, error) {
	eval, err := s.Evaluate(ctx, userID, input.ExerciseID, input.Weight, input.Reps)
	if err != nil {
		return nil, err
	}
	if !eval.IsNewRecord {
		return nil, &NotARecordError{Current: eval.Superseded}
	}

	record := &domain.PersonalRecord{
		UserID:     userID,
		ExerciseID: input.ExerciseID,
		Weight:     input.Weight,
		Reps:       input.Reps,
		Notes:      input.Notes,
		AchievedAt: time.Now().UTC(),
	}
	if input.AchievedAt != nil {
		record.AchievedAt = *input.AchievedAt
	}

	prID, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = prID
	return record, nil
}

// GetRecordsForExercise returns the exercise and the user's full record
// history for it, heaviest first. Dominated rows are included.
func (s *recordService) GetRecordsForExercise(ctx context.Context, userID, exerciseID uint) (*domain.Exercise, []domain.PersonalRecord, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrExerciseNotFound
		}
		return nil, nil, err
	}

	records, err := s.recordRepo.ListByExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	return exercise, records, nil
}

// DeleteRecord removes one record owned by the user.
func (s *recordService) DeleteRecord(ctx context.Context, userID, prID uint) error {
	if _, err := s.recordRepo.GetByID(ctx, prID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return s.recordRepo.Delete(ctx, prID)
}
