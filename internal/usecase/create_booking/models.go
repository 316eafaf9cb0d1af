package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ShareIt/internal/service/bookings/models"
)

// Request модель запроса на создание бронирования
type Request struct {
	BookerID int64
	ItemID   int64
	Start    *time.Time
	End      *time.Time
}

// Response созданное бронирование в том же виде, что и при чтении
type Response = models.BookingResponse
