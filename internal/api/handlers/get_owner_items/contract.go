package get_owner_items

import (
	"context"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

type ItemService interface {
	ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*models.ItemDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
