package domain

import "errors"

var (
	ErrInvalidFrom = errors.New("from must not be negative")
	ErrInvalidSize = errors.New("size must be between 1 and 100")
)

// Page окно выборки
type Page struct {
	Offset uint64
	Limit  uint64
}

// NewPage строит окно по параметрам from/size.
// Окно выровнено по странице: from=5, size=10 даёт первую страницу.
func NewPage(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, ErrInvalidFrom
	}
	if size < MinPageSize || size > MaxPageSize {
		return Page{}, ErrInvalidSize
	}
	return Page{
		Offset: uint64(from/size) * uint64(size),
		Limit:  uint64(size),
	}, nil
}
