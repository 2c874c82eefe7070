package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hrnet/internal/repository"
)

const getValueQuery = `SELECT value FROM kv_store WHERE key = $1`

const setValueQuery = `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP;
	`

func TestPostgresGet_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(getValueQuery)).
		WithArgs("persist:employees").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"list":"[]"}`))

	repo := repository.NewPostgresStorage(mock)
	value, err := repo.Get(context.Background(), "persist:employees")

	require.NoError(t, err)
	assert.JSONEq(t, `{"list":"[]"}`, value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(getValueQuery)).
		WithArgs("persist:employees").
		WillReturnError(pgx.ErrNoRows)

	repo := repository.NewPostgresStorage(mock)
	_, err = repo.Get(context.Background(), "persist:employees")

	require.ErrorIs(t, err, repository.ErrKeyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(getValueQuery)).
		WithArgs("persist:employees").
		WillReturnError(assert.AnError)

	repo := repository.NewPostgresStorage(mock)
	_, err = repo.Get(context.Background(), "persist:employees")

	require.EqualError(t, err, "failed to get value by key: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSet_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(setValueQuery)).
		WithArgs("persist:employees", "value").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := repository.NewPostgresStorage(mock)
	err = repo.Set(context.Background(), "persist:employees", "value")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSet_QueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(setValueQuery)).
		WithArgs("persist:employees", "value").
		WillReturnError(assert.AnError)

	repo := repository.NewPostgresStorage(mock)
	err = repo.Set(context.Background(), "persist:employees", "value")

	require.Error(t, err)
	assert.Equal(t, "failed to save value: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(assert.AnError)

	repo := repository.NewPostgresStorage(mock)
	err = repo.Ping(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}
