package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShareIt/pkg/psqlbuilder"
)

var itemColumns = []string{
	"id",
	"name",
	"description",
	"available",
	"owner_id",
	"request_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий вещей
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий вещей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую вещь
func (r *Repository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return item, nil
}

// GetByID получает вещь по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы доступность
// и владелец не изменились до фиксации бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan item: %v", ErrScanRow, err)
	}
	return item, nil
}

// Update сохраняет изменяемые поля вещи
func (r *Repository) Update(ctx context.Context, item *domain.Item) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("available", item.Available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ListByOwner возвращает вещи владельца по возрастанию ID
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error) {
	query, args, err := psqlbuilder.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByOwner", query, args)
}

// Search ищет доступные вещи, в названии или описании которых есть text (без учёта регистра)
func (r *Repository) Search(ctx context.Context, text string, page domain.Page) ([]*domain.Item, error) {
	pattern := "%" + escapeLike(text) + "%"

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "Search", query, args)
}

// ListByRequestIDs возвращает вещи, созданные в ответ на запросы
func (r *Repository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error) {
	if len(requestIDs) == 0 {
		return []*domain.Item{}, nil
	}

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequestIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByRequestIDs", query, args)
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan item: %v", ErrScanRow, op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrExecQuery, op, err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var requestID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&requestID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if requestID.Valid {
		id := requestID.Int64
		item.RequestID = &id
	}
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
