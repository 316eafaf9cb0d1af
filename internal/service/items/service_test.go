package items

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	requestRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/request"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
	"github.com/m04kA/SMC-ShareIt/pkg/ptr"
)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockItemRepo) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*domain.Item, error) {
	args := m.Called(ctx, ownerID, page)
	return args.Get(0).([]*domain.Item), args.Error(1)
}

func (m *mockItemRepo) Search(ctx context.Context, text string, page domain.Page) ([]*domain.Item, error) {
	args := m.Called(ctx, text, page)
	return args.Get(0).([]*domain.Item), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemRequest), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ListApprovedByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	items    *mockItemRepo
	users    *mockUserRepo
	requests *mockRequestRepo
	bookings *mockBookingRepo
	comments *mockCommentRepo
}

var now = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		items:    &mockItemRepo{},
		users:    &mockUserRepo{},
		requests: &mockRequestRepo{},
		bookings: &mockBookingRepo{},
		comments: &mockCommentRepo{},
	}
	f.svc = NewService(f.items, f.users, f.requests, f.bookings, f.comments, nopLogger{})
	f.svc.timeProvider = fixedTime{now: now}
	return f
}

func drill() *domain.Item {
	return &domain.Item{ID: 3, Name: "Дрель", Description: "Ударная", Available: true, OwnerID: 1}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateItemRequest
	}{
		{name: "no name", req: models.CreateItemRequest{OwnerID: 1, Description: ptr.Ptr("x"), Available: ptr.Ptr(true)}},
		{name: "blank description", req: models.CreateItemRequest{OwnerID: 1, Name: ptr.Ptr("x"), Description: ptr.Ptr(" "), Available: ptr.Ptr(true)}},
		{name: "no available", req: models.CreateItemRequest{OwnerID: 1, Name: ptr.Ptr("x"), Description: ptr.Ptr("y")}},
		{name: "negative request", req: models.CreateItemRequest{OwnerID: 1, Name: ptr.Ptr("x"), Description: ptr.Ptr("y"), Available: ptr.Ptr(true), RequestID: ptr.Ptr(int64(-1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Create(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			f.users.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_UnknownRequest(t *testing.T) {
	f := newFixture()
	f.users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.requests.On("GetByID", mock.Anything, int64(7)).Return(nil, requestRepo.ErrRequestNotFound)

	_, err := f.svc.Create(context.Background(), &models.CreateItemRequest{
		OwnerID: 1, Name: ptr.Ptr("Дрель"), Description: ptr.Ptr("Ударная"), Available: ptr.Ptr(true), RequestID: ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
	f.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_UserNotFound(t *testing.T) {
	f := newFixture()
	f.users.On("Exists", mock.Anything, int64(1)).Return(false, nil)

	_, err := f.svc.Create(context.Background(), &models.CreateItemRequest{
		OwnerID: 1, Name: ptr.Ptr("Дрель"), Description: ptr.Ptr("Ударная"), Available: ptr.Ptr(true),
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Update(t *testing.T) {
	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		f := newFixture()
		f.users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(), nil)
		f.items.On("Update", mock.Anything, &domain.Item{ID: 3, Name: "Дрель", Description: "Ударная", Available: false, OwnerID: 1}).Return(nil)

		resp, err := f.svc.Update(context.Background(), &models.UpdateItemRequest{OwnerID: 1, ItemID: 3, Available: ptr.Ptr(false)})

		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, "Дрель", resp.Name)
		f.items.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture()
		f.users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(), nil)

		_, err := f.svc.Update(context.Background(), &models.UpdateItemRequest{OwnerID: 2, ItemID: 3, Name: ptr.Ptr("Моя дрель")})

		assert.ErrorIs(t, err, ErrNotOwner)
		f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_GetByID_AnnotatesOnlyForOwner(t *testing.T) {
	past := &domain.Booking{ID: 1, ItemID: 3, BookerID: 2, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour), Status: domain.StatusApproved}
	next := &domain.Booking{ID: 2, ItemID: 3, BookerID: 2, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour), Status: domain.StatusApproved}
	comment := &domain.Comment{ID: 5, Text: "Хорошая", ItemID: 3, AuthorID: 2, AuthorName: "Борис", Created: now}

	t.Run("owner", func(t *testing.T) {
		f := newFixture()
		f.users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(), nil)
		f.comments.On("ListByItemIDs", mock.Anything, []int64{3}).Return([]*domain.Comment{comment}, nil)
		f.bookings.On("ListApprovedByItemIDs", mock.Anything, []int64{3}).Return([]*domain.Booking{past, next}, nil)

		resp, err := f.svc.GetByID(context.Background(), 1, 3)

		require.NoError(t, err)
		require.NotNil(t, resp.LastBooking)
		require.NotNil(t, resp.NextBooking)
		assert.Equal(t, int64(1), resp.LastBooking.ID)
		assert.Equal(t, int64(2), resp.NextBooking.ID)
		require.Len(t, resp.Comments, 1)
		assert.Equal(t, "Борис", resp.Comments[0].AuthorName)
	})

	t.Run("other user", func(t *testing.T) {
		f := newFixture()
		f.users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
		f.items.On("GetByID", mock.Anything, int64(3)).Return(drill(), nil)
		f.comments.On("ListByItemIDs", mock.Anything, []int64{3}).Return([]*domain.Comment{comment}, nil)

		resp, err := f.svc.GetByID(context.Background(), 2, 3)

		require.NoError(t, err)
		assert.Nil(t, resp.LastBooking)
		assert.Nil(t, resp.NextBooking)
		assert.Len(t, resp.Comments, 1)
		f.bookings.AssertNotCalled(t, "ListApprovedByItemIDs", mock.Anything, mock.Anything)
	})
}

func TestService_ListByOwner(t *testing.T) {
	f := newFixture()
	page := domain.Page{Offset: 0, Limit: 20}
	tent := &domain.Item{ID: 4, Name: "Палатка", Description: "Трёхместная", Available: true, OwnerID: 1}
	f.users.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.items.On("ListByOwner", mock.Anything, int64(1), page).Return([]*domain.Item{drill(), tent}, nil)
	f.comments.On("ListByItemIDs", mock.Anything, []int64{3, 4}).Return([]*domain.Comment{}, nil)
	f.bookings.On("ListApprovedByItemIDs", mock.Anything, []int64{3, 4}).Return([]*domain.Booking{
		{ID: 9, ItemID: 4, BookerID: 2, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: domain.StatusApproved},
	}, nil)

	resp, err := f.svc.ListByOwner(context.Background(), 1, page)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Nil(t, resp[0].NextBooking)
	require.NotNil(t, resp[1].NextBooking)
	assert.Equal(t, int64(9), resp[1].NextBooking.ID)
	assert.NotNil(t, resp[0].Comments)
}

func TestService_Search(t *testing.T) {
	t.Run("blank text", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.Search(context.Background(), "  ", domain.Page{Limit: 20})

		require.NoError(t, err)
		assert.Empty(t, resp)
		f.items.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("matches", func(t *testing.T) {
		f := newFixture()
		f.items.On("Search", mock.Anything, "дРеЛь", domain.Page{Limit: 20}).Return([]*domain.Item{drill()}, nil)

		resp, err := f.svc.Search(context.Background(), "дРеЛь", domain.Page{Limit: 20})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, int64(3), resp[0].ID)
	})
}
