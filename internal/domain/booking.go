package domain

import (
	"errors"
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	// StatusCanceled объявлен для совместимости с клиентами, переход в него не реализован
	StatusCanceled BookingStatus = "CANCELED"
)

// AllStatuses все известные статусы бронирования
var AllStatuses = []BookingStatus{StatusWaiting, StatusApproved, StatusRejected, StatusCanceled}

// Booking бронирование вещи.
// Item и Booker заполняются репозиторием при чтении (join), при создании не используются.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   BookingStatus

	Item   *Item
	Booker *User

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeDecided бронирование ещё ждёт решения владельца
func (b *Booking) CanBeDecided() bool {
	return b.Status == StatusWaiting
}

// IsVisibleTo бронирование видят только арендатор и владелец вещи
func (b *Booking) IsVisibleTo(userID int64, ownerID int64) bool {
	return b.BookerID == userID || ownerID == userID
}

// DecisionStatus статус, в который переводит решение владельца
func DecisionStatus(approved bool) BookingStatus {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// BookingState фильтр списка бронирований
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ErrUnknownState неизвестное значение фильтра state
var ErrUnknownState = errors.New("Unknown state: UNSUPPORTED_STATUS")

// StateRule условия фильтра state. Нулевые поля не проверяются.
// Интервальные условия строгие относительно now.
type StateRule struct {
	Status      BookingStatus
	StartBefore bool // start < now
	EndAfter    bool // end > now
	EndBefore   bool // end < now
	StartAfter  bool // start > now
}

var stateRules = map[BookingState]StateRule{
	StateAll:      {},
	StateCurrent:  {StartBefore: true, EndAfter: true},
	StatePast:     {EndBefore: true},
	StateFuture:   {StartAfter: true},
	StateWaiting:  {Status: StatusWaiting},
	StateRejected: {Status: StatusRejected},
}

// ParseBookingState разбирает фильтр; пустая строка означает ALL
func ParseBookingState(s string) (BookingState, error) {
	if s == "" {
		return StateAll, nil
	}
	if _, ok := stateRules[BookingState(s)]; !ok {
		return "", ErrUnknownState
	}
	return BookingState(s), nil
}

// Rule условия фильтра. Для неизвестного state ok == false.
func (s BookingState) Rule() (StateRule, bool) {
	rule, ok := stateRules[s]
	return rule, ok
}

// BookingRole чья сторона бронирований запрашивается
type BookingRole int

const (
	RoleBooker BookingRole = iota
	RoleOwner
)

// BookingsFilter фильтр для списка бронирований пользователя
type BookingsFilter struct {
	UserID int64
	Role   BookingRole
	State  BookingState
	Now    time.Time
	Page   Page
}

// ItemBookings последнее и ближайшее одобренные бронирования вещи
type ItemBookings struct {
	Last *Booking
	Next *Booking
}

// LastAndNext выбирает среди бронирований одной вещи последнее начавшееся и ближайшее будущее.
// Учитываются только APPROVED.
func LastAndNext(bookings []*Booking, now time.Time) ItemBookings {
	var result ItemBookings
	for _, b := range bookings {
		if b.Status != StatusApproved {
			continue
		}
		switch {
		case b.Start.Before(now):
			if result.Last == nil || b.Start.After(result.Last.Start) {
				result.Last = b
			}
		case b.Start.After(now):
			if result.Next == nil || b.Start.Before(result.Next.Start) {
				result.Next = b
			}
		}
	}
	return result
}
