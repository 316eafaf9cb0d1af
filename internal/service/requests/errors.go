package requests

import "errors"

var (
	// ErrRequestNotFound запрос не найден
	ErrRequestNotFound = errors.New("requests.service: request not found")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("requests.service: user not found")

	// ErrInvalidInput некорректные данные запроса
	ErrInvalidInput = errors.New("requests.service: invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("requests.service: internal error")
)
