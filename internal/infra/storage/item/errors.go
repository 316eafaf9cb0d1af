package item

import "errors"

var (
	// ErrItemNotFound вещь не найдена
	ErrItemNotFound = errors.New("item.repository: item not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("item.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("item.repository: failed to execute query")

	// ErrScanRow ошибка сканирования результата
	ErrScanRow = errors.New("item.repository: failed to scan row")
)
