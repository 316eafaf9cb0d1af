package update_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/service/items"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidItemID      = "некорректный ID вещи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные вещи"
	msgUserNotFound       = "пользователь не найден"
	msgItemNotFound       = "вещь не найдена"
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

// Handle PATCH /items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathID(r, "itemId")
	if err != nil {
		h.logger.Warn("PATCH /items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /items/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /items/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateItemRequest{
		OwnerID:     userID,
		ItemID:      itemID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, items.ErrInvalidInput):
			h.logger.Warn("PATCH /items/{id} - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, items.ErrUserNotFound):
			h.logger.Warn("PATCH /items/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		// Чужая вещь для пользователя не существует
		case errors.Is(err, items.ErrItemNotFound), errors.Is(err, items.ErrNotOwner):
			h.logger.Warn("PATCH /items/{id} - Item not found for user: item_id=%d, user_id=%d", itemID, userID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("PATCH /items/{id} - Failed to update item: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /items/{id} - Item updated successfully: item_id=%d, user_id=%d", itemID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
