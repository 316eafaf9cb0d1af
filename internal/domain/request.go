package domain

import "time"

// ItemRequest запрос на вещь, которой ещё нет в каталоге
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
	Items       []*Item
}
