package create_comment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	createComment "github.com/m04kA/SMC-ShareIt/internal/usecase/create_comment"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidItemID      = "некорректный ID вещи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyText          = "текст отзыва не может быть пустым"
	msgItemNotFound       = "вещь не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgNotEligible        = "отзыв может оставить только арендатор после начала бронирования"
)

type Handler struct {
	useCase CreateCommentUseCase
	logger  Logger
}

func NewHandler(useCase CreateCommentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /items/{itemId}/comment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathID(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /items/{id}/comment - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /items/{id}/comment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateCommentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /items/{id}/comment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createComment.Request{
		AuthorID: userID,
		ItemID:   itemID,
		Text:     req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, createComment.ErrInvalidInput):
			h.logger.Warn("POST /items/{id}/comment - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgEmptyText)

		case errors.Is(err, createComment.ErrItemNotFound):
			h.logger.Warn("POST /items/{id}/comment - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createComment.ErrUserNotFound):
			h.logger.Warn("POST /items/{id}/comment - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createComment.ErrNotEligible):
			h.logger.Warn("POST /items/{id}/comment - Not eligible: item_id=%d, user_id=%d", itemID, userID)
			handlers.RespondBadRequest(w, msgNotEligible)

		default:
			h.logger.Error("POST /items/{id}/comment - Failed to create comment: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /items/{id}/comment - Comment created: comment_id=%d, item_id=%d, user_id=%d",
		result.ID, itemID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
