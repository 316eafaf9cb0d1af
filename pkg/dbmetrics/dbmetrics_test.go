package dbmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM users"))
	assert.Equal(t, "insert", operation("  INSERT INTO items (name) VALUES ($1)"))
	assert.Equal(t, "update", operation("UPDATE\nbookings SET status = $1"))
}

func TestDB_ObservesErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.New("test")
	db := Wrap(sqlDB, m, "test")

	mock.ExpectExec("UPDATE bookings").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "APPROVED")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("update")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_BeginTxPutsExecutorInContext(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil, "test")

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ctx := WithTx(context.Background(), tx)
	assert.True(t, IsInTransaction(ctx))
	assert.Equal(t, tx, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(context.Background()))
	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
