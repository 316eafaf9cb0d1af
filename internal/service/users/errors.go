package users

import "errors"

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("users.service: user not found")

	// ErrEmailAlreadyExists email занят
	ErrEmailAlreadyExists = errors.New("users.service: email already exists")

	// ErrInvalidInput некорректные данные пользователя
	ErrInvalidInput = errors.New("users.service: invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("users.service: internal error")
)
