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
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("training session not found or access denied")
)

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Email  string   `json:"email" binding:"required,email"`
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Goal   string   `json:"goal,omitempty"`
}

// WeightLogInput is one body-weight measurement.
type WeightLogInput struct {
	Weight   float64    `json:"weight" binding:"required"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// BjjSessionInput is one grappling session.
type BjjSessionInput struct {
	SessionDate         *time.Time `json:"session_date,omitempty"`
	Duration            int        `json:"duration" binding:"required"`
	TechniquesPracticed string     `json:"techniques_practiced,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Rating              *int       `json:"rating,omitempty"`
}

// ProfileView is the dashboard payload: the account plus recent
// activity highlights.
type ProfileView struct {
	User          *domain.User            `json:"user"`
	WeightHistory []domain.WeightLog      `json:"weight_history"`
	RecentRecords []domain.PersonalRecord `json:"recent_records"`
	Stats         StatsView               `json:"stats"`
}

// StatsView summarises training activity.
type StatsView struct {
	TotalWorkouts      int64   `json:"total_workouts"`
	WorkoutsLast30Days int64   `json:"workouts_last_30_days"`
	TotalVolume        float64 `json:"total_volume"`
	TotalBjjSessions   int64   `json:"total_bjj_sessions"`
	BjjLast30Days      int64   `json:"bjj_last_30_days"`
}

// WeightHistoryView is a page of measurements.
type WeightHistoryView struct {
	Logs  []domain.WeightLog `json:"logs"`
	Total int64              `json:"total"`
}

// BjjSessionListView is a page of grappling sessions.
type BjjSessionListView struct {
	Sessions []domain.BjjSession `json:"sessions"`
	Total    int64               `json:"total"`
}

// UserService covers the account profile, body-weight tracking and
// grappling sessions.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*domain.User, error)
	Stats(ctx context.Context, userID uint) (*StatsView, error)

	AddWeightLog(ctx context.Context, userID uint, input WeightLogInput) (*domain.WeightLog, error)
	GetWeightHistory(ctx context.Context, userID uint, limit, offset int) (*WeightHistoryView, error)

	LogBjjSession(ctx context.Context, userID uint, input BjjSessionInput) (*domain.BjjSession, error)
	GetBjjSessions(ctx context.Context, userID uint, limit, offset int) (*BjjSessionListView, error)
	UpdateBjjSession(ctx context.Context, userID, sessionID uint, input BjjSessionInput) (*domain.BjjSession, error)
	DeleteBjjSession(ctx context.Context, userID, sessionID uint) error
}

// userService implements the UserService interface.
type userService struct {
	userRepo      repository.UserRepository
	weightLogRepo repository.WeightLogRepository
	logRepo       repository.WorkoutLogRepository
	recordRepo    repository.RecordRepository
	bjjRepo       repository.BjjRepository
	tx            repository.TxManager
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	weightLogRepo repository.WeightLogRepository,
	logRepo repository.WorkoutLogRepository,
	recordRepo repository.RecordRepository,
	bjjRepo repository.BjjRepository,
	tx repository.TxManager,
) UserService {
	return &userService{
		userRepo:      userRepo,
		weightLogRepo: weightLogRepo,
		logRepo:       logRepo,
		recordRepo:    recordRepo,
		bjjRepo:       bjjRepo,
		tx:            tx,
	}
}

// GetProfile assembles the dashboard: account fields, the last ten
// weight entries, the five most recent personal records and the
// activity counters.
func (s *userService) GetProfile(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	weightHistory, err := s.weightLogRepo.ListByUser(ctx, userID, 10, 0)
	if err != nil {
		return nil, err
	}
	recentRecords, err := s.recordRepo.ListRecent(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User:          user,
		WeightHistory: weightHistory,
		RecentRecords: recentRecords,
		Stats:         *stats,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Email = input.Email
	user.Weight = input.Weight
	user.Height = input.Height
	user.Goal = input.Goal
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats counts lifetime and trailing-30-day activity.
func (s *userService) Stats(ctx context.Context, userID uint) (*StatsView, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)

	totalWorkouts, err := s.logRepo.CountLogs(ctx, userID)
	if err != nil {
		return nil, err
	}
	recentWorkouts, err := s.logRepo.CountLogsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	totalVolume, err := s.logRepo.TotalVolumeForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalBjj, err := s.bjjRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recentBjj, err := s.bjjRepo.CountSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return &StatsView{
		TotalWorkouts:      totalWorkouts,
		WorkoutsLast30Days: recentWorkouts,
		TotalVolume:        totalVolume,
		TotalBjjSessions:   totalBjj,
		BjjLast30Days:      recentBjj,
	}, nil
}

// AddWeightLog records a measurement and keeps the profile's current
// weight in step, as one transaction.
func (s *userService) AddWeightLog(ctx context.Context, userID uint, input WeightLogInput) (*domain.WeightLog, error) {
	if input.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidationFailed)
	}
	loggedAt := time.Now().UTC()
	if input.LoggedAt != nil {
		loggedAt = *input.LoggedAt
	}
	log := &domain.WeightLog{
		UserID:   userID,
		Weight:   input.Weight,
		LoggedAt: loggedAt,
		Notes:    input.Notes,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.weightLogRepo.Create(ctx, log); err != nil {
			return err
		}
		return s.userRepo.UpdateWeight(ctx, userID, input.Weight)
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (s *userService) GetWeightHistory(ctx context.Context, userID uint, limit, offset int) (*WeightHistoryView, error) {
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	logs, err := s.weightLogRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.weightLogRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WeightHistoryView{Logs: logs, Total: total}, nil
}

func (s *userService) LogBjjSession(ctx context.Context, userID uint, input BjjSessionInput) (*domain.BjjSession, error) {
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidationFailed)
	}
	sessionDate := time.Now().UTC()
	if input.SessionDate != nil {
		sessionDate = *input.SessionDate
	}
	session := &domain.BjjSession{
		UserID:              userID,
		SessionDate:         sessionDate,
		Duration:            input.Duration,
		TechniquesPracticed: input.TechniquesPracticed,
		Notes:               input.Notes,
		Rating:              input.Rating,
	}
	if _, err := s.bjjRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *userService) GetBjjSessions(ctx context.Context, userID uint, limit, offset int) (*BjjSessionListView, error) {
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	sessions, err := s.bjjRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.bjjRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BjjSessionListView{Sessions: sessions, Total: total}, nil
}

func (s *userService) UpdateBjjSession(ctx context.Context, userID, sessionID uint, input BjjSessionInput) (*domain.BjjSession, error) {
	session, err := s.bjjRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidationFailed)
	}
	if input.SessionDate != nil {
		session.SessionDate = *input.SessionDate
	}
	session.Duration = input.Duration
	session.TechniquesPracticed = input.TechniquesPracticed
	session.Notes = input.Notes
	session.Rating = input.Rating
	if err := s.bjjRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *userService) DeleteBjjSession(ctx context.Context, userID, sessionID uint) error {
	if _, err := s.bjjRepo.GetByID(ctx, sessionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.bjjRepo.Delete(ctx, sessionID)
}
