package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShareIt/pkg/psqlbuilder"
)

// Колонки бронирования вместе с данными вещи и арендатора
var bookingColumns = []string{
	"b.id",
	"b.start_date",
	"b.end_date",
	"b.item_id",
	"b.booker_id",
	"b.status",
	"b.created_at",
	"b.updated_at",
	"i.name",
	"i.description",
	"i.available",
	"i.owner_id",
	"u.name",
	"u.email",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("items i ON i.id = b.item_id").
		Join("users u ON u.id = b.booker_id")
}

// Create создает новое бронирование.
// Использует транзакцию из контекста, если она есть.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(booking.Start, booking.End, booking.ItemID, booking.BookerID, string(booking.Status)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// GetByID получает бронирование с данными вещи и арендатора.
// Внутри транзакции строка бронирования блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}
	return booking, nil
}

// List возвращает бронирования арендатора или владельца вещей.
// Фильтр по состоянию применяется до сортировки (start DESC) и пагинации.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := selectBookings()

	switch filter.Role {
	case domain.RoleOwner:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"i.owner_id": filter.UserID})
	default:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booker_id": filter.UserID})
	}

	if cond := stateCondition(filter.State, filter.Now); cond != nil {
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.
		OrderBy("b.start_date DESC").
		Offset(filter.Page.Offset).
		Limit(filter.Page.Limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// stateCondition SQL-предикат по правилу state; для ALL условия нет
func stateCondition(state domain.BookingState, now time.Time) squirrel.Sqlizer {
	rule, ok := state.Rule()
	if !ok {
		return nil
	}

	var conds squirrel.And
	if rule.Status != "" {
		conds = append(conds, squirrel.Eq{"b.status": string(rule.Status)})
	}
	if rule.StartBefore {
		conds = append(conds, squirrel.Lt{"b.start_date": now})
	}
	if rule.EndAfter {
		conds = append(conds, squirrel.Gt{"b.end_date": now})
	}
	if rule.EndBefore {
		conds = append(conds, squirrel.Lt{"b.end_date": now})
	}
	if rule.StartAfter {
		conds = append(conds, squirrel.Gt{"b.start_date": now})
	}

	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return conds
	}
}

// ListApprovedByItemIDs одобренные бронирования указанных вещей
func (r *Repository) ListApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	if len(itemIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		Where(squirrel.Eq{"b.status": string(domain.StatusApproved)}).
		OrderBy("b.start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByItemIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListApprovedByItemIDs", query, args)
}

// HasStartedApprovedBooking проверяет, брал ли пользователь вещь:
// есть одобренное бронирование, начавшееся до now
func (r *Repository) HasStartedApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("bookings").
		Where(squirrel.Eq{
			"booker_id": bookerID,
			"item_id":   itemID,
			"status":    string(domain.StatusApproved),
		}).
		Where(squirrel.Lt{"start_date": now}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasStartedApprovedBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasStartedApprovedBooking - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// UpdateStatusIfWaiting переводит бронирование из WAITING в status.
// Если бронирование уже не в WAITING, возвращает ErrStatusConflict.
func (r *Repository) UpdateStatusIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusWaiting)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfWaiting - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfWaiting - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfWaiting - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// CountByStatus количество бронирований в каждом статусе
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan: %v", ErrScanRow, err)
		}
		counts[domain.BookingStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows iteration: %v", ErrExecQuery, err)
	}
	return counts, nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrExecQuery, op, err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		item                 domain.Item
		booker               domain.User
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.ItemID,
		&booking.BookerID,
		&status,
		&createdAt,
		&updatedAt,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&booker.Name,
		&booker.Email,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	item.ID = booking.ItemID
	booker.ID = booking.BookerID
	booking.Item = &item
	booking.Booker = &booker

	return &booking, nil
}
