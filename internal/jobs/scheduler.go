package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает фоновые задачи по cron-расписанию (UTC, с секундами)
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

func NewScheduler(logger Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		logger: logger,
	}
}

// Register добавляет задачу; паника внутри задачи логируется и не останавливает планировщик
func (s *Scheduler) Register(name, spec string, job func()) error {
	_, err := s.cron.AddFunc(spec, s.withRecovery(name, job))
	if err != nil {
		return fmt.Errorf("jobs: register %s with schedule %q: %w", name, spec, err)
	}
	s.logger.Info("Scheduler: job %s registered, schedule=%q", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting")
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения выполняющихся задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}

func (s *Scheduler) withRecovery(name string, job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Scheduler: job %s panicked: %v", name, r)
			}
		}()
		job()
	}
}
