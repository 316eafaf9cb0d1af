package create_booking

import (
	"fmt"
	"time"
)

// validateRequest проверяет поля запроса, не требующие обращения к БД
func validateRequest(req *Request, now time.Time) error {
	if req.Start == nil || req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.End == nil || req.End.IsZero() {
		return fmt.Errorf("%w: end is required", ErrInvalidInput)
	}

	if err := validateTimeRange(*req.Start, *req.End, now); err != nil {
		return err
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemId must be positive", ErrInvalidInput)
	}

	return nil
}

// validateTimeRange интервал непустой, начинается не в прошлом и идёт вперёд
func validateTimeRange(start, end, now time.Time) error {
	if start.Equal(end) {
		return fmt.Errorf("%w: start equals end", ErrInvalidTimeRange)
	}

	if start.Before(now) {
		return fmt.Errorf("%w: start is in the past", ErrInvalidTimeRange)
	}

	if end.Before(start) {
		return fmt.Errorf("%w: end is before start", ErrInvalidTimeRange)
	}

	return nil
}
