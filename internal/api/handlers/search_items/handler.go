package search_items

import (
	"net/http"

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	"github.com/m04kA/SMC-ShareIt/internal/domain"
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

// Handle GET /items/search?text=&from=&size=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePagination(r, domain.DefaultItemsPageSize)
	if err != nil {
		h.logger.Warn("GET /items/search - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	text := r.URL.Query().Get("text")
	result, err := h.service.Search(r.Context(), text, page)
	if err != nil {
		h.logger.Error("GET /items/search - Failed to search items: text=%q, error=%v", text, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /items/search - Items found: text=%q, count=%d", text, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
