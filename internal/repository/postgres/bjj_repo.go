package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"
)

// bjjRepository implements repository.BjjRepository.
type bjjRepository struct {
	db *DB
}

// NewBjjRepository creates a new BJJ session repository backed by Postgres.
func NewBjjRepository(db *DB) repository.BjjRepository {
	return &bjjRepository{db: db}
}

func (r *bjjRepository) Create(ctx context.Context, session *domain.BjjSession) (uint, error) {
	if session.UserID == 0 {
		return 0, errors.New("user ID is required")
	}
	if err := r.db.handle(ctx).Create(session).Error; err != nil {
		return 0, err
	}
	return session.ID, nil
}

func (r *bjjRepository) GetByID(ctx context.Context, sessionID, userID uint) (*domain.BjjSession, error) {
	var session domain.BjjSession
	err := r.db.handle(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &session, nil
}

func (r *bjjRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.BjjSession, error) {
	var sessions []domain.BjjSession
	err := r.db.handle(ctx).
		Where("user_id = ?", userID).
		Order("session_date DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *bjjRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.BjjSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *bjjRepository) CountSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.handle(ctx).Model(&domain.BjjSession{}).
		Where("user_id = ? AND session_date >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *bjjRepository) Update(ctx context.Context, session *domain.BjjSession) error {
	if session.ID == 0 {
		return errors.New("session ID is required for update")
	}
	res := r.db.handle(ctx).Model(&domain.BjjSession{}).
		Where("session_id = ?", session.ID).
		Updates(map[string]interface{}{
			"session_date":         session.SessionDate,
			"duration":             session.Duration,
			"techniques_practiced": session.TechniquesPracticed,
			"notes":                session.Notes,
			"rating":               session.Rating,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bjjRepository) Delete(ctx context.Context, sessionID uint) error {
	res := r.db.handle(ctx).Delete(&domain.BjjSession{}, "session_id = ?", sessionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
