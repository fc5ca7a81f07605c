package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
)

// exerciseRepository implements repository.ExerciseRepository.
type exerciseRepository struct {
	db *DB
}

// NewExerciseRepository creates a new exercise repository backed by Postgres.
func NewExerciseRepository(db *DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (uint, error) {
	if exercise.Name == "" || exercise.CategoryID == 0 {
		return 0, errors.New("exercise name and category are required")
	}
	if err := r.db.handle(ctx).Create(exercise).Error; err != nil {
		return 0, err
	}
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uint) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := r.db.handle(ctx).First(&exercise, "exercise_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &exercise, nil
}

func (r *exerciseRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	if len(ids) == 0 {
		return exercises, nil
	}
	if err := r.db.handle(ctx).Where("exercise_id IN ?", ids).Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) List(ctx context.Context, categoryID *uint) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	q := r.db.handle(ctx).Order("name ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Search(ctx context.Context, query string, categoryID *uint) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	q := r.db.handle(ctx).
		Where("name LIKE ? OR muscle_group LIKE ?", "%"+query+"%", "%"+query+"%").
		Order("name ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == 0 {
		return errors.New("exercise ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.Exercise{}).
		Where("exercise_id = ?", exercise.ID).
		Updates(map[string]interface{}{
			"name":             exercise.Name,
			"category_id":      exercise.CategoryID,
			"description":      exercise.Description,
			"equipment_needed": exercise.EquipmentNeeded,
			"muscle_group":     exercise.MuscleGroup,
			"instructions":     exercise.Instructions,
			"video_url":        exercise.VideoURL,
			"image_url":        exercise.ImageURL,
			"is_compound":      exercise.IsCompound,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.handle(ctx).Delete(&domain.Exercise{}, "exercise_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) CountWorkoutUsage(ctx context.Context, exerciseID uint) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.WorkoutExercise{}).
		Where("exercise_id = ?", exerciseID).
		Count(&count).Error
	return count, err
}

// categoryRepository implements repository.CategoryRepository.
type categoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository backed by Postgres.
func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.ExerciseCategory) (uint, error) {
	if category.Name == "" {
		return 0, errors.New("category name is required")
	}
	if err := r.db.handle(ctx).Create(category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.ExerciseCategory, error) {
	var category domain.ExerciseCategory
	if err := r.db.handle(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.ExerciseCategory, error) {
	var categories []domain.ExerciseCategory
	if err := r.db.handle(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.ExerciseCategory) error {
	if category.ID == 0 {
		return errors.New("category ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.ExerciseCategory{}).
		Where("category_id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.handle(ctx).Delete(&domain.ExerciseCategory{}, "category_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) CountExercises(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.Exercise{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
