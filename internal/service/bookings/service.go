package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShareIt/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Бронирование видят только арендатор и владелец вещи, остальным оно "не найдено".
func (s *Service) GetByID(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsVisibleTo(userID, booking.Item.OwnerID) {
		s.logger.Warn("GetByID: user=%d is neither booker nor owner of booking id=%d", userID, bookingID)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// Decide принимает решение владельца: WAITING -> APPROVED/REJECTED.
// Строка бронирования блокируется на время транзакции: второе решение ждёт первое,
// затем читает уже не WAITING и получает ErrAlreadyDecided.
func (s *Service) Decide(ctx context.Context, req *models.DecideRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decide: booking id=%d, owner=%d, approved=%t", req.BookingID, req.OwnerID, req.Approved)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case txmanager.IsSerializationFailure(err):
				return ErrAlreadyDecided
			}
			return fmt.Errorf("%w: Decide - get booking: %v", ErrInternal, err)
		}

		if !booking.Item.IsOwnedBy(req.OwnerID) {
			return ErrNotItemOwner
		}

		if !booking.CanBeDecided() {
			return ErrAlreadyDecided
		}

		status := domain.DecisionStatus(req.Approved)
		if err := s.bookingRepo.UpdateStatusIfWaiting(txCtx, booking.ID, status); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) || txmanager.IsSerializationFailure(err) {
				return ErrAlreadyDecided
			}
			return fmt.Errorf("%w: Decide - update status: %v", ErrInternal, err)
		}

		booking.Status = status
		result = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			s.logger.Error("Decide: booking id=%d: %v", req.BookingID, err)
			return nil, err
		case txmanager.IsSerializationFailure(err):
			s.logger.Warn("Decide: booking id=%d decided concurrently: %v", req.BookingID, err)
			return nil, ErrAlreadyDecided
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrNotItemOwner), errors.Is(err, ErrAlreadyDecided):
			s.logger.Warn("Decide: booking id=%d rejected: %v", req.BookingID, err)
			return nil, err
		default:
			s.logger.Error("Decide: transaction failed for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: Decide - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Decide: booking id=%d is now %s", result.ID, result.Status)
	return models.FromDomainBooking(result), nil
}

// ListForBooker бронирования, сделанные пользователем
func (s *Service) ListForBooker(ctx context.Context, req *models.ListBookingsRequest) ([]*models.BookingResponse, error) {
	return s.list(ctx, "ListForBooker", domain.RoleBooker, req)
}

// ListForOwner бронирования вещей пользователя
func (s *Service) ListForOwner(ctx context.Context, req *models.ListBookingsRequest) ([]*models.BookingResponse, error) {
	return s.list(ctx, "ListForOwner", domain.RoleOwner, req)
}

// list общая логика списков: state проверяется раньше пользователя
func (s *Service) list(ctx context.Context, op string, role domain.BookingRole, req *models.ListBookingsRequest) ([]*models.BookingResponse, error) {
	s.logger.Info("%s: user=%d, state=%s, offset=%d, limit=%d", op, req.UserID, req.State, req.Page.Offset, req.Page.Limit)

	state, err := domain.ParseBookingState(req.State)
	if err != nil {
		s.logger.Warn("%s: unknown state=%q for user=%d", op, req.State, req.UserID)
		return nil, ErrUnknownState
	}

	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		s.logger.Error("%s: failed to check user=%d: %v", op, req.UserID, err)
		return nil, fmt.Errorf("%w: %s - check user: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: user=%d not found", op, req.UserID)
		return nil, ErrUserNotFound
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		UserID: req.UserID,
		Role:   role,
		State:  state,
		Now:    s.timeProvider.Now(),
		Page:   req.Page,
	})
	if err != nil {
		s.logger.Error("%s: repository error for user=%d: %v", op, req.UserID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings for user=%d", op, len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}
