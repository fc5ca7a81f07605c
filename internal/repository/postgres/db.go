package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB wraps the GORM handle shared by all repositories. It also
// implements repository.TxManager (see tx.go).
type DB struct {
	gorm *gorm.DB
}

// Connect opens a PostgreSQL connection from a DSN and verifies it with
// a ping.
func Connect(dsn string) (*DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &DB{gorm: db}, nil
}

// Open wraps an already-opened GORM handle. Tests use this with an
// in-memory SQLite dialector.
func Open(db *gorm.DB) *DB {
	return &DB{gorm: db}
}

// Migrate creates or updates the schema for all domain tables.
func (d *DB) Migrate() error {
	return d.gorm.AutoMigrate(
		&domain.User{},
		&domain.WeightLog{},
		&domain.ExerciseCategory{},
		&domain.Exercise{},
		&domain.WorkoutPlan{},
		&domain.Workout{},
		&domain.WorkoutExercise{},
		&domain.WorkoutLog{},
		&domain.ExerciseLog{},
		&domain.PersonalRecord{},
		&domain.BjjSession{},
	)
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapErr translates GORM's not-found sentinel into the repository one.
func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
