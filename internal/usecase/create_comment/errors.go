package create_comment

import "errors"

var (
	// ErrItemNotFound вещь не найдена
	ErrItemNotFound = errors.New("create_comment: item not found")

	// ErrUserNotFound автор не найден
	ErrUserNotFound = errors.New("create_comment: user not found")

	// ErrNotEligible у автора нет начавшегося одобренного бронирования вещи
	ErrNotEligible = errors.New("create_comment: user has no approved booking of this item")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_comment: invalid input data")

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_comment: internal error")
)
