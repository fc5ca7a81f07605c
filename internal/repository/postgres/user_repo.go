package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// userRepository implements repository.UserRepository.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository backed by Postgres.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (uint, error) {
	if user.Username == "" || user.Email == "" {
		return 0, errors.New("username and email are required")
	}
	user.CreatedAt = time.Now().UTC()
	if err := r.db.handle(ctx).Create(user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.handle(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.handle(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.handle(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == 0 {
		return errors.New("user ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.User{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
			"weight":   user.Weight,
			"height":   user.Height,
			"goal":     user.Goal,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	res := r.db.handle(ctx).Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateWeight keeps users.weight in sync with the latest weight log.
func (r *userRepository) UpdateWeight(ctx context.Context, userID uint, weight float64) error {
	return r.db.handle(ctx).Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("weight", weight).Error
}
