package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	itemRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/item"
	userRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShareIt/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// recordingTx выполняет fn сразу и запоминает, что транзакция открывалась
type recordingTx struct{ calls int }

func (r *recordingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2030, 5, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	bookings *mockBookingRepo
	items    *mockItemRepo
	users    *mockUserRepo
	tx       *recordingTx
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		items:    &mockItemRepo{},
		users:    &mockUserRepo{},
		tx:       &recordingTx{},
	}
	f.uc = NewUseCase(f.bookings, f.items, f.users, f.tx, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

var (
	booker = &domain.User{ID: 2, Name: "Борис", Email: "boris@example.com"}
	owner  = &domain.User{ID: 1, Name: "Анна", Email: "anna@example.com"}
)

func drill(available bool) *domain.Item {
	return &domain.Item{ID: 3, Name: "Дрель", Description: "Ударная", Available: available, OwnerID: owner.ID}
}

func request(start, end time.Time) *Request {
	return &Request{BookerID: booker.ID, ItemID: 3, Start: ptr.Ptr(start), End: ptr.Ptr(end)}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()
	start, end := now.Add(time.Hour), now.Add(25*time.Hour)

	f.users.On("GetByID", mock.Anything, booker.ID).Return(booker, nil)
	f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(true), nil)
	f.bookings.On("Create", mock.Anything, &domain.Booking{
		Start: start, End: end, ItemID: 3, BookerID: booker.ID, Status: domain.StatusWaiting,
	}).Return(&domain.Booking{ID: 10, Start: start, End: end, ItemID: 3, BookerID: booker.ID, Status: domain.StatusWaiting}, nil)

	resp, err := f.uc.Execute(context.Background(), request(start, end))

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, "Дрель", resp.Item.Name)
	assert.Equal(t, "boris@example.com", resp.Booker.Email)
	assert.Equal(t, 1, f.tx.calls)
	f.bookings.AssertExpectations(t)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no start", req: &Request{BookerID: 2, ItemID: 3, End: ptr.Ptr(now.Add(time.Hour))}, wantErr: ErrInvalidInput},
		{name: "no end", req: &Request{BookerID: 2, ItemID: 3, Start: ptr.Ptr(now.Add(time.Hour))}, wantErr: ErrInvalidInput},
		{name: "no item", req: &Request{BookerID: 2, Start: ptr.Ptr(now.Add(time.Hour)), End: ptr.Ptr(now.Add(2 * time.Hour))}, wantErr: ErrInvalidInput},
		{name: "start equals end", req: request(now.Add(time.Hour), now.Add(time.Hour)), wantErr: ErrInvalidTimeRange},
		{name: "start in the past", req: request(now.Add(-time.Minute), now.Add(time.Hour)), wantErr: ErrInvalidTimeRange},
		{name: "end before start", req: request(now.Add(2*time.Hour), now.Add(time.Hour)), wantErr: ErrInvalidTimeRange},
		{
			name:    "no item with empty range",
			req:     &Request{BookerID: 2, Start: ptr.Ptr(now.Add(time.Hour)), End: ptr.Ptr(now.Add(time.Hour))},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "no item with range in the past",
			req:     &Request{BookerID: 2, Start: ptr.Ptr(now.Add(-time.Hour)), End: ptr.Ptr(now.Add(time.Hour))},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	start, end := now.Add(time.Hour), now.Add(2*time.Hour)

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, booker.ID).Return(nil, userRepo.ErrUserNotFound)

		_, err := f.uc.Execute(context.Background(), request(start, end))

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, booker.ID).Return(booker, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(nil, itemRepo.ErrItemNotFound)

		_, err := f.uc.Execute(context.Background(), request(start, end))

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("item unavailable", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, booker.ID).Return(booker, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(false), nil)

		_, err := f.uc.Execute(context.Background(), request(start, end))

		assert.ErrorIs(t, err, ErrItemUnavailable)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("owner books own item", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, owner.ID).Return(owner, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(true), nil)

		req := request(start, end)
		req.BookerID = owner.ID
		_, err := f.uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrOwnerBooking)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, booker.ID).Return(booker, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(true), nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("serialization failure"))

		_, err := f.uc.Execute(context.Background(), request(start, end))

		assert.ErrorIs(t, err, ErrInternal)
	})
}
