package get_owner_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /bookings/owner?state=&from=&size=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/owner - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// state проверяется раньше пагинации
	state := r.URL.Query().Get("state")
	if _, err := domain.ParseBookingState(state); err != nil {
		h.logger.Warn("GET /bookings/owner - Unknown state: user_id=%d, state=%q", userID, state)
		handlers.RespondError(w, http.StatusInternalServerError, bookings.ErrUnknownState.Error())
		return
	}

	page, err := handlers.ParsePagination(r, domain.DefaultBookingsPageSize)
	if err != nil {
		h.logger.Warn("GET /bookings/owner - Invalid pagination: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListForOwner(r.Context(), &models.ListBookingsRequest{
		UserID: userID,
		State:  state,
		Page:   page,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnknownState):
			// Неизвестный state отдаётся как 500 с фиксированным текстом
			h.logger.Warn("GET /bookings/owner - Unknown state: user_id=%d, state=%q", userID, state)
			handlers.RespondError(w, http.StatusInternalServerError, bookings.ErrUnknownState.Error())

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings/owner - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("GET /bookings/owner - Failed to list bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/owner - Bookings retrieved successfully: user_id=%d, count=%d", userID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
