package models

import (
	"github.com/m04kA/SMC-ShareIt/internal/domain"
	"github.com/m04kA/SMC-ShareIt/pkg/types"
)

// CreateItemRequest новая вещь; обязательность полей проверяет сервис
type CreateItemRequest struct {
	OwnerID     int64
	Name        *string
	Description *string
	Available   *bool
	RequestID   *int64
}

// UpdateItemRequest частичное обновление вещи
type UpdateItemRequest struct {
	OwnerID     int64
	ItemID      int64
	Name        *string
	Description *string
	Available   *bool
}

// ItemResponse вещь в ответе API
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ItemDetailsResponse вещь с отзывами и, для владельца, ближайшими бронированиями
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []*CommentResponse    `json:"comments"`
}

type BookingShortResponse struct {
	ID       int64          `json:"id"`
	BookerID int64          `json:"bookerId"`
	Start    types.DateTime `json:"start"`
	End      types.DateTime `json:"end"`
}

// CommentResponse отзыв в ответе API
type CommentResponse struct {
	ID         int64          `json:"id"`
	Text       string         `json:"text"`
	ItemID     int64          `json:"itemId"`
	AuthorID   int64          `json:"authorId"`
	AuthorName string         `json:"authorName"`
	Created    types.DateTime `json:"created"`
}

func FromDomainItem(item *domain.Item) *ItemResponse {
	return &ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func FromDomainItemList(items []*domain.Item) []*ItemResponse {
	result := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}

func FromDomainComment(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		ItemID:     c.ItemID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Created:    types.NewDateTime(c.Created),
	}
}

func fromDomainBookingShort(b *domain.Booking) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    types.NewDateTime(b.Start),
		End:      types.NewDateTime(b.End),
	}
}

// NewItemDetails собирает ответ; bookings пустой для не-владельца
func NewItemDetails(item *domain.Item, comments []*domain.Comment, bookings domain.ItemBookings) *ItemDetailsResponse {
	resp := &ItemDetailsResponse{
		ItemResponse: *FromDomainItem(item),
		LastBooking:  fromDomainBookingShort(bookings.Last),
		NextBooking:  fromDomainBookingShort(bookings.Next),
		Comments:     make([]*CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, FromDomainComment(c))
	}
	return resp
}
