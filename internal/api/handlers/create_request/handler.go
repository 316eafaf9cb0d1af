package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/service/requests"
	"github.com/m04kA/SMC-ShareIt/internal/service/requests/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyDescription   = "описание запроса не может быть пустым"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateRequestRequest{
		RequesterID: userID,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgEmptyDescription)

		case errors.Is(err, requests.ErrUserNotFound):
			h.logger.Warn("POST /requests - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /requests - Failed to create request: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request created: request_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
