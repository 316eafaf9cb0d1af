package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ShareIt/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ShareIt/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID int64           `json:"itemId"`
	Start  *types.DateTime `json:"start"` // "2030-01-10T12:00:00"
	End    *types.DateTime `json:"end"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(bookerID int64) *createBooking.Request {
	return &createBooking.Request{
		BookerID: bookerID,
		ItemID:   r.ItemID,
		Start:    timeOrNil(r.Start),
		End:      timeOrNil(r.End),
	}
}

func timeOrNil(d *types.DateTime) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
