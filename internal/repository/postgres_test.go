package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/nearby-labs/waypost/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getQuery = `
		SELECT value
		FROM kv_store
		WHERE key = $1;
	`

const putQuery = `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success - table created", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
			WillReturnResult(pgxmock.NewResult("CREATE", 0))

		require.NoError(t, repo.EnsureSchema(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - exec fails", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
			WillReturnError(assert.AnError)

		err = repo.EnsureSchema(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to create kv_store table")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	key := "reminders"

	t.Run("success - value found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
			WithArgs(key).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[{"task":"milk"}]`)))

		value, err := repo.Get(ctx, key)

		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"task":"milk"}]`), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - absent key yields nil without error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
			WithArgs(key).
			WillReturnError(pgx.ErrNoRows)

		value, err := repo.Get(ctx, key)

		require.NoError(t, err)
		require.Nil(t, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query fails", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
			WithArgs(key).
			WillReturnError(assert.AnError)

		value, err := repo.Get(ctx, key)

		require.Nil(t, value)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query value for key")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPut(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	key := "reminders"
	value := []byte(`[{"task":"milk"}]`)

	t.Run("success - value upserted", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(putQuery)).
			WithArgs(key, value).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Put(ctx, key, value))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - exec fails", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(putQuery)).
			WithArgs(key, value).
			WillReturnError(assert.AnError)

		err = repo.Put(ctx, key, value)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to upsert value for key")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
