// Package jobs — scheduler.go настраивает расписание:
// ночной пересчёт очков всех участников.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	rescorer *Rescorer
	spec     string
}

// NewScheduler создаёт планировщик задач с московским часовым поясом.
func NewScheduler(rescorer *Rescorer, spec string) *Scheduler {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.WithError(err).Warn("Не удалось загрузить Europe/Moscow, используем UTC+3")
		loc = time.FixedZone("MSK", 3*60*60)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		rescorer: rescorer,
		spec:     spec,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.AddFunc(s.spec, func() {
		log.Info("[CRON] Ночной пересчёт очков")
		if _, err := s.rescorer.Run(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка пересчёта")
		}
	})

	s.cron.Start()
	log.WithField("spec", s.spec).Info("Планировщик задач запущен (Europe/Moscow)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
