package jobs

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m04kA/SMC-ShareIt/internal/domain"
)

// BookingCounter источник количества бронирований по статусам
type BookingCounter interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingStats обновляет gauge бронирований по статусам
type BookingStats struct {
	counter BookingCounter
	gauge   *prometheus.GaugeVec
	timeout time.Duration
	logger  Logger
}

func NewBookingStats(counter BookingCounter, gauge *prometheus.GaugeVec, logger Logger) *BookingStats {
	return &BookingStats{
		counter: counter,
		gauge:   gauge,
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

// Run один проход; статусы без строк выставляются в 0
func (j *BookingStats) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	counts, err := j.counter.CountByStatus(ctx)
	if err != nil {
		j.logger.Error("BookingStats: failed to count bookings: %v", err)
		return
	}

	for _, status := range domain.AllStatuses {
		j.gauge.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}
