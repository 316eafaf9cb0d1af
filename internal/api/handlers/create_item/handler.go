package create_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/service/items"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "название, описание и доступность вещи обязательны"
	msgUserNotFound       = "пользователь не найден"
	msgRequestNotFound    = "запрос не найден"
)

type Handler struct {
	service ItemService
	logger  Logger
}

func NewHandler(service ItemService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, items.ErrInvalidInput):
			h.logger.Warn("POST /items - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, items.ErrUserNotFound):
			h.logger.Warn("POST /items - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, items.ErrRequestNotFound):
			h.logger.Warn("POST /items - Request not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		default:
			h.logger.Error("POST /items - Failed to create item: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /items - Item created successfully: item_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
