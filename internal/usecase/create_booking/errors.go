package create_booking

import "errors"

var (
	// ErrUserNotFound арендатор не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrItemNotFound вещь не найдена
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrItemUnavailable вещь недоступна для бронирования
	ErrItemUnavailable = errors.New("create_booking: item is not available")

	// ErrOwnerBooking владелец пытается забронировать свою вещь.
	// Наружу отдаётся как "не найдено": своя вещь не предлагается владельцу к аренде.
	ErrOwnerBooking = errors.New("create_booking: owner cannot book own item")

	// ErrInvalidTimeRange некорректный интервал бронирования
	ErrInvalidTimeRange = errors.New("create_booking: invalid booking time range")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_booking: internal error")
)
