package update_item

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/service/items"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) Update(ctx context.Context, req *models.UpdateItemRequest) (*models.ItemResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(userID int64, itemID, payload string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/items/"+itemID, strings.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"itemId": itemID})
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func TestHandler_Handle_PartialUpdate(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdateItemRequest) bool {
		return req.OwnerID == 1 && req.ItemID == 3 && req.Name == nil && req.Available != nil && !*req.Available
	})).Return(&models.ItemResponse{ID: 3, Name: "Дрель", Description: "Ударная", Available: false}, nil)
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(1, "3", `{"available":false}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"name":"Дрель","description":"Ударная","available":false,"requestId":null}`, rec.Body.String())
}

func TestHandler_Handle_NotOwnerIsNotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, items.ErrNotOwner)
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(2, "3", `{"name":"Моя дрель"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Handle_InvalidItemID(t *testing.T) {
	svc := &mockService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(1, "abc", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
