package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	itemRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/item"
	userRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	itemRepo     ItemRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе WAITING.
// Чтение вещи и вставка выполняются в одной транзакции, строка вещи заблокирована до фиксации.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: booker=%d, item=%d", req.BookerID, req.ItemID)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Арендатор
	booker, err := uc.userRepo.GetByID(ctx, req.BookerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.BookerID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.BookerID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Проверка вещи и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := uc.itemRepo.GetByID(txCtx, req.ItemID)
		if err != nil {
			if errors.Is(err, itemRepo.ErrItemNotFound) {
				uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
				return ErrItemNotFound
			}
			uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
		}

		if !item.Available {
			uc.logger.Warn("CreateBooking: item id=%d is not available", item.ID)
			return ErrItemUnavailable
		}

		if item.IsOwnedBy(req.BookerID) {
			uc.logger.Warn("CreateBooking: user id=%d tried to book own item id=%d", req.BookerID, item.ID)
			return ErrOwnerBooking
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Start:    *req.Start,
			End:      *req.End,
			ItemID:   item.ID,
			BookerID: booker.ID,
			Status:   domain.StatusWaiting,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created.Item = item
		created.Booker = booker
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return models.FromDomainBooking(result), nil
}
