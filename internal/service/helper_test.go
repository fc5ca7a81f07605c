package service_test

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database per test and runs
// the migrations. The DSN is keyed on the test name so parallel tests
// never share state.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	db := postgres.Open(gdb)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *postgres.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	_, err := postgres.NewUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

// seedExercise creates a category on first use and an exercise in it.
func seedExercise(t *testing.T, db *postgres.DB, name string) *domain.Exercise {
	t.Helper()
	ctx := context.Background()
	categoryRepo := postgres.NewCategoryRepository(db)
	categories, err := categoryRepo.List(ctx)
	require.NoError(t, err)

	var categoryID uint
	if len(categories) > 0 {
		categoryID = categories[0].ID
	} else {
		categoryID, err = categoryRepo.Create(ctx, &domain.ExerciseCategory{Name: "Strength"})
		require.NoError(t, err)
	}

	exercise := &domain.Exercise{Name: name, CategoryID: categoryID}
	_, err = postgres.NewExerciseRepository(db).Create(ctx, exercise)
	require.NoError(t, err)
	return exercise
}
