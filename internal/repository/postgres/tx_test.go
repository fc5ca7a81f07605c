package postgres_test

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

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

func countUsers(t *testing.T, db *postgres.DB) int {
	t.Helper()
	users := postgres.NewUserRepository(db)
	count := 0
	for i := 1; ; i++ {
		if _, err := users.GetByID(context.Background(), uint(i)); err != nil {
			break
		}
		count++
	}
	return count
}

func TestWithTransactionCommits(t *testing.T) {
	db := newTestDB(t)
	users := postgres.NewUserRepository(db)

	err := db.WithTransaction(context.Background(), func(ctx context.Context) error {
		_, err := users.Create(ctx, &domain.User{Username: "a", Email: "a@example.com"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	users := postgres.NewUserRepository(db)
	boom := errors.New("boom")

	err := db.WithTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := users.Create(ctx, &domain.User{Username: "a", Email: "a@example.com"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, countUsers(t, db))
}

func TestWithTransactionIsReentrant(t *testing.T) {
	db := newTestDB(t)
	users := postgres.NewUserRepository(db)
	boom := errors.New("boom")

	// The inner call joins the outer transaction instead of opening a
	// nested one, so the outer failure discards the inner write too.
	err := db.WithTransaction(context.Background(), func(ctx context.Context) error {
		inner := db.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := users.Create(ctx, &domain.User{Username: "a", Email: "a@example.com"})
			return err
		})
		if inner != nil {
			return inner
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, countUsers(t, db))
}

func TestRepositoryReadsJoinOpenTransaction(t *testing.T) {
	db := newTestDB(t)
	users := postgres.NewUserRepository(db)

	err := db.WithTransaction(context.Background(), func(ctx context.Context) error {
		id, err := users.Create(ctx, &domain.User{Username: "a", Email: "a@example.com"})
		if err != nil {
			return err
		}
		// Uncommitted writes are visible to reads made with the
		// transaction context.
		fetched, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		assert.Equal(t, "a", fetched.Username)
		return nil
	})
	require.NoError(t, err)
}
