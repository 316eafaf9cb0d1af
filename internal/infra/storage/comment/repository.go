package comment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShareIt/pkg/psqlbuilder"
)

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв; время создания задаёт вызывающий
func (r *Repository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("comments").
		Columns("text", "item_id", "author_id", "created").
		Values(comment.Text, comment.ItemID, comment.AuthorID, comment.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return comment, nil
}

// ListByItemIDs отзывы к вещам вместе с именами авторов
func (r *Repository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	if len(itemIDs) == 0 {
		return []*domain.Comment{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.item_id": itemIDs}).
		OrderBy("c.created ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByItemIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByItemIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("%w: ListByItemIDs - scan comment: %v", ErrScanRow, err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByItemIDs - rows iteration: %v", ErrExecQuery, err)
	}
	return comments, nil
}
