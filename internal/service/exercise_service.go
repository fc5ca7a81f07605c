package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrCategoryNotFound = errors.New("exercise category not found")
	ErrExerciseInUse    = errors.New("exercise is referenced by workout plans and cannot be deleted")
	ErrCategoryInUse    = errors.New("category still contains exercises and cannot be deleted")
)

// ExerciseInput carries the mutable fields of a library exercise.
type ExerciseInput struct {
	Name            string `json:"name" binding:"required"`
	CategoryID      uint   `json:"category_id" binding:"required"`
	Description     string `json:"description,omitempty"`
	EquipmentNeeded string `json:"equipment_needed,omitempty"`
	MuscleGroup     string `json:"muscle_group,omitempty"`
	Instructions    string `json:"instructions,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	IsCompound      bool   `json:"is_compound,omitempty"`
}

// CategoryInput carries the mutable fields of an exercise category.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// ExerciseService manages the shared exercise library and its
// categories. Mutations are admin operations; reads are open to any
// authenticated user.
type ExerciseService interface {
	ListExercises(ctx context.Context, categoryID *uint, query string) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, id uint) (*domain.Exercise, error)
	CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, id uint, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id uint) error

	ListCategories(ctx context.Context) ([]domain.ExerciseCategory, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.ExerciseCategory, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*domain.ExerciseCategory, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	categoryRepo repository.CategoryRepository
	recordRepo   repository.RecordRepository
	logRepo      repository.WorkoutLogRepository
	tx           repository.TxManager
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	categoryRepo repository.CategoryRepository,
	recordRepo repository.RecordRepository,
	logRepo repository.WorkoutLogRepository,
	tx repository.TxManager,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		categoryRepo: categoryRepo,
		recordRepo:   recordRepo,
		logRepo:      logRepo,
		tx:           tx,
	}
}

// ListExercises returns the library, optionally filtered by category
// and by a name/muscle-group search term.
func (s *exerciseService) ListExercises(ctx context.Context, categoryID *uint, query string) ([]domain.Exercise, error) {
	if query != "" {
		return s.exerciseRepo.Search(ctx, query, categoryID)
	}
	return s.exerciseRepo.List(ctx, categoryID)
}

func (s *exerciseService) GetExercise(ctx context.Context, id uint) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error) {
	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	exercise := &domain.Exercise{
		Name:            input.Name,
		CategoryID:      input.CategoryID,
		Description:     input.Description,
		EquipmentNeeded: input.EquipmentNeeded,
		MuscleGroup:     input.MuscleGroup,
		Instructions:    input.Instructions,
		VideoURL:        input.VideoURL,
		ImageURL:        input.ImageURL,
		IsCompound:      input.IsCompound,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) UpdateExercise(ctx context.Context, id uint, input ExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	exercise.Name = input.Name
	exercise.CategoryID = input.CategoryID
	exercise.Description = input.Description
	exercise.EquipmentNeeded = input.EquipmentNeeded
	exercise.MuscleGroup = input.MuscleGroup
	exercise.Instructions = input.Instructions
	exercise.VideoURL = input.VideoURL
	exercise.ImageURL = input.ImageURL
	exercise.IsCompound = input.IsCompound
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes an exercise from the library. An exercise
// still prescribed by any workout cannot be deleted; otherwise its
// personal records and historic set rows are removed with it in one
// transaction.
func (s *exerciseService) DeleteExercise(ctx context.Context, id uint) error {
	if _, err := s.GetExercise(ctx, id); err != nil {
		return err
	}
	usage, err := s.exerciseRepo.CountWorkoutUsage(ctx, id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return fmt.Errorf("%w: used in %d workout(s)", ErrExerciseInUse, usage)
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.recordRepo.DeleteByExercise(ctx, id); err != nil {
			return err
		}
		if err := s.logRepo.DeleteExerciseLogsByExercise(ctx, id); err != nil {
			return err
		}
		return s.exerciseRepo.Delete(ctx, id)
	})
}

func (s *exerciseService) ListCategories(ctx context.Context) ([]domain.ExerciseCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *exerciseService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.ExerciseCategory, error) {
	category := &domain.ExerciseCategory{
		Name:        input.Name,
		Description: input.Description,
	}
	if _, err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *exerciseService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*domain.ExerciseCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category.Name = input.Name
	category.Description = input.Description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes an empty category. Categories that still hold
// exercises are protected.
func (s *exerciseService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	count, err := s.categoryRepo.CountExercises(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d exercise(s) remain", ErrCategoryInUse, count)
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *exerciseService) requireCategory(ctx context.Context, categoryID uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: unknown category", ErrValidationFailed)
		}
		return err
	}
	return nil
}
