package bookings

import (
	"errors"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
)

var (
	// ErrBookingNotFound бронирование не найдено или недоступно пользователю
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("bookings.service: user not found")

	// ErrNotItemOwner решение по бронированию принимает только владелец вещи
	ErrNotItemOwner = errors.New("bookings.service: only the item owner can decide")

	// ErrAlreadyDecided решение по бронированию уже принято
	ErrAlreadyDecided = errors.New("bookings.service: booking already decided")

	// ErrUnknownState неизвестный фильтр state
	ErrUnknownState = domain.ErrUnknownState

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
