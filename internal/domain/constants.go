package domain

import "unicode/utf8"

// Пагинация
const (
	DefaultFrom             = 0
	DefaultBookingsPageSize = 10
	DefaultItemsPageSize    = 20
	DefaultRequestsPageSize = 10
	MinPageSize             = 1
	MaxPageSize             = 100
)

// Ограничения на длину полей
const (
	MaxNameLength        = 255
	MaxEmailLength       = 512
	MaxDescriptionLength = 2000
	MaxCommentLength     = 2000
)

// TooLong длина строки в символах больше limit.
// Ограничения совпадают с VARCHAR(n) в схеме, поэтому считаются руны, а не байты.
func TooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}
