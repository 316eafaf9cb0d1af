package get_all_requests

import (
	"context"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/internal/service/requests/models"
)

type RequestService interface {
	ListOthers(ctx context.Context, userID int64, page domain.Page) ([]*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
