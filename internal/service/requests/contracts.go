package requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
)

// RequestRepository интерфейс репозитория запросов
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ItemRequest) (*domain.ItemRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, page domain.Page) ([]*domain.ItemRequest, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ItemRepository интерфейс репозитория вещей
type ItemRepository interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error)
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
