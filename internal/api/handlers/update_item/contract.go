package update_item

import (
	"context"

	"github.com/m04kA/SMC-ShareIt/internal/service/items/models"
)

type ItemService interface {
	Update(ctx context.Context, req *models.UpdateItemRequest) (*models.ItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
