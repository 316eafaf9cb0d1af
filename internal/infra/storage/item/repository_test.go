package item

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows(itemColumns)
}

func TestRepository_Search(t *testing.T) {
	repo, mock, _ := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM items WHERE available = $1 AND (name ILIKE $2 OR description ILIKE $3) ORDER BY id ASC LIMIT 20 OFFSET 0")).
		WithArgs(true, "%дрель%", "%дрель%").
		WillReturnRows(itemRows().
			AddRow(int64(1), "Дрель", "Аккумуляторная дрель", true, int64(2), nil, now, now))

	items, err := repo.Search(context.Background(), "дрель", domain.Page{Offset: 0, Limit: 20})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Дрель", items[0].Name)
	assert.Nil(t, items[0].RequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Search_EscapesWildcards(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery("FROM items").
		WithArgs(true, `%100\%%`, `%100\%%`).
		WillReturnRows(itemRows())

	items, err := repo.Search(context.Background(), "100%", domain.Page{Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	repo, mock, db := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, available, owner_id, request_id, created_at, updated_at FROM items WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(itemRows().AddRow(int64(3), "Палатка", "Трёхместная", false, int64(9), int64(4), now, now))
	mock.ExpectCommit()

	tx, err := dbmetrics.Wrap(db, nil, "test").BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	item, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.False(t, item.Available)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, int64(4), *item.RequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery("FROM items WHERE id = \\$1$").
		WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 3)

	assert.ErrorIs(t, err, ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByRequestIDs(t *testing.T) {
	repo, mock, _ := newRepo(t)

	items, err := repo.ListByRequestIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id IN ($1,$2) ORDER BY id ASC")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(itemRows())

	_, err = repo.ListByRequestIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE items SET name = $1, description = $2, available = $3, updated_at = NOW() WHERE id = $4")).
		WithArgs("Дрель", "Ударная", true, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Item{ID: 8, Name: "Дрель", Description: "Ударная", Available: true})

	assert.ErrorIs(t, err, ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
