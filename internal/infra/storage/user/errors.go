package user

import "errors"

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrEmailAlreadyExists email уже занят другим пользователем
	ErrEmailAlreadyExists = errors.New("user.repository: email already exists")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
