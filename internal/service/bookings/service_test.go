package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatusIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// inlineTx выполняет функцию без реальной транзакции; commitErr имитирует ошибку фиксации
type inlineTx struct{ commitErr error }

func (tx inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func newService() (*Service, *mockBookingRepo, *mockUserRepo) {
	bRepo := &mockBookingRepo{}
	uRepo := &mockUserRepo{}
	svc := NewService(bRepo, uRepo, inlineTx{}, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc, bRepo, uRepo
}

func waitingBooking() *domain.Booking {
	return &domain.Booking{
		ID:       10,
		Start:    now.Add(time.Hour),
		End:      now.Add(2 * time.Hour),
		ItemID:   3,
		BookerID: 2,
		Status:   domain.StatusWaiting,
		Item:     &domain.Item{ID: 3, Name: "Дрель", OwnerID: 1},
		Booker:   &domain.User{ID: 2, Name: "Борис", Email: "boris@example.com"},
	}
}

func TestService_Decide(t *testing.T) {
	tests := []struct {
		name       string
		approved   bool
		wantStatus domain.BookingStatus
	}{
		{name: "approve", approved: true, wantStatus: domain.StatusApproved},
		{name: "reject", approved: false, wantStatus: domain.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bRepo, _ := newService()
			bRepo.On("GetByID", mock.Anything, int64(10)).Return(waitingBooking(), nil)
			bRepo.On("UpdateStatusIfWaiting", mock.Anything, int64(10), tt.wantStatus).Return(nil)

			resp, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: tt.approved})

			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)
			assert.Equal(t, "Борис", resp.Booker.Name)
			bRepo.AssertExpectations(t)
		})
	}
}

func TestService_Decide_Failures(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		svc, bRepo, _ := newService()
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		svc, bRepo, _ := newService()
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(waitingBooking(), nil)

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 2, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrNotItemOwner)
		bRepo.AssertNotCalled(t, "UpdateStatusIfWaiting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second decision", func(t *testing.T) {
		svc, bRepo, _ := newService()
		decided := waitingBooking()
		decided.Status = domain.StatusApproved
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(decided, nil)

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: false})

		assert.ErrorIs(t, err, ErrAlreadyDecided)
		bRepo.AssertNotCalled(t, "UpdateStatusIfWaiting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent decision wins", func(t *testing.T) {
		svc, bRepo, _ := newService()
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(waitingBooking(), nil)
		bRepo.On("UpdateStatusIfWaiting", mock.Anything, int64(10), domain.StatusApproved).Return(bookingRepo.ErrStatusConflict)

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("row changed by concurrent decision", func(t *testing.T) {
		svc, bRepo, _ := newService()
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(nil,
			fmt.Errorf("%w: GetByID - scan booking: %w", bookingRepo.ErrScanRow,
				&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}))

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrAlreadyDecided)
		assert.NotErrorIs(t, err, ErrInternal)
		bRepo.AssertNotCalled(t, "UpdateStatusIfWaiting", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("commit rejected by concurrent decision", func(t *testing.T) {
		bRepo := &mockBookingRepo{}
		svc := NewService(bRepo, &mockUserRepo{}, inlineTx{commitErr: fmt.Errorf("txmanager: commit: %w", &pq.Error{Code: "40001"})}, nopLogger{})
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(waitingBooking(), nil)
		bRepo.On("UpdateStatusIfWaiting", mock.Anything, int64(10), domain.StatusApproved).Return(nil)

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, bRepo, _ := newService()
		bRepo.On("GetByID", mock.Anything, int64(10)).Return(nil, errors.New("connection reset"))

		_, err := svc.Decide(context.Background(), &models.DecideRequest{OwnerID: 1, BookingID: 10, Approved: true})

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetByID_Visibility(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "booker", userID: 2},
		{name: "owner", userID: 1},
		{name: "stranger", userID: 5, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bRepo, _ := newService()
			bRepo.On("GetByID", mock.Anything, int64(10)).Return(waitingBooking(), nil)

			resp, err := svc.GetByID(context.Background(), 10, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), resp.ID)
			assert.Equal(t, "WAITING", resp.Status)
		})
	}
}

func TestService_ListForBooker(t *testing.T) {
	svc, bRepo, uRepo := newService()
	page := domain.Page{Offset: 0, Limit: 10}
	uRepo.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	bRepo.On("List", mock.Anything, domain.BookingsFilter{
		UserID: 2, Role: domain.RoleBooker, State: domain.StatePast, Now: now, Page: page,
	}).Return([]*domain.Booking{waitingBooking()}, nil)

	resp, err := svc.ListForBooker(context.Background(), &models.ListBookingsRequest{UserID: 2, State: "PAST", Page: page})

	require.NoError(t, err)
	assert.Len(t, resp, 1)
	bRepo.AssertExpectations(t)
}

func TestService_ListForOwner_DefaultsToAll(t *testing.T) {
	svc, bRepo, uRepo := newService()
	page := domain.Page{Offset: 0, Limit: 10}
	uRepo.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	bRepo.On("List", mock.Anything, domain.BookingsFilter{
		UserID: 1, Role: domain.RoleOwner, State: domain.StateAll, Now: now, Page: page,
	}).Return([]*domain.Booking{}, nil)

	resp, err := svc.ListForOwner(context.Background(), &models.ListBookingsRequest{UserID: 1, Page: page})

	require.NoError(t, err)
	assert.Empty(t, resp)
	bRepo.AssertExpectations(t)
}

func TestService_List_UnknownStateCheckedBeforeUser(t *testing.T) {
	svc, _, uRepo := newService()

	_, err := svc.ListForOwner(context.Background(), &models.ListBookingsRequest{UserID: 404, State: "UNSUPPORTED_STATUS"})

	assert.ErrorIs(t, err, ErrUnknownState)
	uRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestService_List_UserNotFound(t *testing.T) {
	svc, bRepo, uRepo := newService()
	uRepo.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	_, err := svc.ListForBooker(context.Background(), &models.ListBookingsRequest{UserID: 404, State: "ALL"})

	assert.ErrorIs(t, err, ErrUserNotFound)
	bRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
