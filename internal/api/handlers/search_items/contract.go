package search_items

import (
	"context"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

type ItemService interface {
	Search(ctx context.Context, text string, page domain.Page) ([]*models.ItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
