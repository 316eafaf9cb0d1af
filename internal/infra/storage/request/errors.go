package request

import "errors"

var (
	// ErrRequestNotFound запрос не найден
	ErrRequestNotFound = errors.New("request.repository: request not found")

	ErrBuildQuery = errors.New("request.repository: failed to build query")
	ErrExecQuery  = errors.New("request.repository: failed to execute query")
	ErrScanRow    = errors.New("request.repository: failed to scan row")
)
