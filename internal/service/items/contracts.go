package items

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
)

// ItemRepository интерфейс репозитория вещей
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error)
	Search(ctx context.Context, text string, page domain.Page) ([]*domain.Item, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// RequestRepository интерфейс репозитория запросов
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error)
}

// CommentRepository интерфейс репозитория отзывов
type CommentRepository interface {
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
