package get_item

import (
	"context"

	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

type ItemService interface {
	GetByID(ctx context.Context, userID, itemID int64) (*models.ItemDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
