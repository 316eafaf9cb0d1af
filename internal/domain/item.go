package domain

import "time"

// Item вещь, которую владелец сдаёт в аренду
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy проверяет владельца вещи
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID == userID
}

// ItemPatch частичное обновление вещи; nil и пустые строки не меняют значение
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply применяет изменения к вещи
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil && *p.Name != "" {
		item.Name = *p.Name
	}
	if p.Description != nil && *p.Description != "" {
		item.Description = *p.Description
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}
