package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
)

func sqlRepoSet(db *sqlx.DB) repoSet {
	return repoSet{
		users:       NewSQLUserRepository(db),
		profiles:    NewSQLQuitProfileRepository(db),
		checkIns:    NewSQLCheckInRepository(db),
		subscribers: NewSQLSubscriberRepository(db),
	}
}

func TestSQLiteRepositories(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tracker.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db), "schema bootstrap must be idempotent")

	runRepositoryContract(t, sqlRepoSet(db))

	t.Run("Foreign keys are enforced", func(t *testing.T) {
		c, err := domain.NewCheckIn("no-such-user", contractNow, 4, "calm", "", contractNow)
		require.NoError(t, err)
		assert.ErrorIs(t, NewSQLCheckInRepository(db).Create(ctx, c), domain.ErrUserNotFound)
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func postgresDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "tracker"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "tracker_test"),
	)
}

func TestPostgresRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	for _, driver := range []string{DriverPgx, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			db, err := Open(ctx, driver, postgresDSN())
			if err != nil {
				t.Skipf("Skipping Postgres integration test: %v", err)
			}
			defer db.Close()

			require.NoError(t, EnsureSchema(ctx, db))
			runRepositoryContract(t, sqlRepoSet(db))
		})
	}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestErrorClassification(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.True(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isForeignKeyViolation(errors.New("timeout")))
	assert.True(t, IsBusy(errors.New("database is locked")))
	assert.False(t, IsBusy(nil))
}
