package items

import "errors"

var (
	// ErrItemNotFound вещь не найдена
	ErrItemNotFound = errors.New("items.service: item not found")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("items.service: user not found")

	// ErrRequestNotFound запрос, на который отвечает вещь, не найден
	ErrRequestNotFound = errors.New("items.service: request not found")

	// ErrNotOwner вещь редактирует только владелец
	ErrNotOwner = errors.New("items.service: user is not the item owner")

	// ErrInvalidInput некорректные данные вещи
	ErrInvalidInput = errors.New("items.service: invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("items.service: internal error")
)
