package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShareIt/pkg/psqlbuilder"
)

var requestColumns = []string{"id", "description", "requester_id", "created"}

// Repository репозиторий запросов на вещи
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запрос
func (r *Repository) Create(ctx context.Context, req *domain.ItemRequest) (*domain.ItemRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("requests").
		Columns("description", "requester_id", "created").
		Values(req.Description, req.RequesterID, req.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return req, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.ItemRequest
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}
	return &req, nil
}

// ListByRequester запросы пользователя, новые первыми
func (r *Repository) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ItemRequest, error) {
	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListByRequester", query, args)
}

// ListOthers запросы остальных пользователей, новые первыми
func (r *Repository) ListOthers(ctx context.Context, userID int64, page domain.Page) ([]*domain.ItemRequest, error) {
	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.NotEq{"requester_id": userID}).
		OrderBy("created DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOthers - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListOthers", query, args)
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.ItemRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	requests := make([]*domain.ItemRequest, 0)
	for rows.Next() {
		var req domain.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("%w: %s - scan request: %v", ErrScanRow, op, err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrExecQuery, op, err)
	}
	return requests, nil
}
