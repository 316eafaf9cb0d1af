package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings"
	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidApproved  = "параметр approved должен быть true или false"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgNotOwner         = "подтвердить бронирование может только владелец вещи"
	msgAlreadyDecided   = "решение по бронированию уже принято"
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

// Handle PATCH /bookings/{bookingId}?approved=true|false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid approved param: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidApproved)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Decide(r.Context(), &models.DecideRequest{
		OwnerID:   userID,
		BookingID: bookingID,
		Approved:  approved,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotItemOwner):
			h.logger.Warn("PATCH /bookings/{id} - Not item owner: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgNotOwner)

		case errors.Is(err, bookings.ErrAlreadyDecided):
			h.logger.Warn("PATCH /bookings/{id} - Already decided: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyDecided)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to decide booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking decided: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
