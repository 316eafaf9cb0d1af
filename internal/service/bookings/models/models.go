package models

import (
	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/types"
)

// ListBookingsRequest запрос списка бронирований арендатора или владельца
type ListBookingsRequest struct {
	UserID int64
	State  string
	Page   domain.Page
}

// DecideRequest решение владельца по бронированию
type DecideRequest struct {
	OwnerID   int64
	BookingID int64
	Approved  bool
}

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  types.DateTime    `json:"start"`
	End    types.DateTime    `json:"end"`
	Status string            `json:"status"`
	Booker BookerResponse    `json:"booker"`
	Item   ItemShortResponse `json:"item"`
}

type BookerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromDomainBooking конвертирует бронирование в ответ.
// Item и Booker должны быть заполнены.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:     b.ID,
		Start:  types.NewDateTime(b.Start),
		End:    types.NewDateTime(b.End),
		Status: string(b.Status),
		Booker: BookerResponse{ID: b.BookerID},
		Item:   ItemShortResponse{ID: b.ItemID},
	}
	if b.Booker != nil {
		resp.Booker.Name = b.Booker.Name
		resp.Booker.Email = b.Booker.Email
	}
	if b.Item != nil {
		resp.Item.Name = b.Item.Name
	}
	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return result
}
