package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout формат даты-времени на проводе: локальное время без зоны
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime время в формате "2006-01-02T15:04:05".
// При разборе также принимается RFC3339. null и пустая строка дают нулевое значение.
type DateTime struct {
	time.Time
}

// NewDateTime оборачивает time.Time
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime разбирает строку в одном из поддерживаемых форматов
func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return DateTime{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid datetime %q: expected %s", s, DateTimeLayout)
	}
	return DateTime{Time: t.In(time.Local)}, nil
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.In(time.Local).Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid datetime: %w", err)
	}
	if s == "" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
