// Package jobs управляет фоновыми задачами (cron).
// rescorer.go выполняет полный пересчёт очков всех участников.
package jobs

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/features/members"
	"github.com/SL177Y-0/MVP-sub000/internal/features/scoring"
)

// Rescorer пересчитывает очки каждого участника сообщества.
// Ошибка одного участника не прерывает обход: запись с ошибкой
// логируется, пересчёт продолжается.
type Rescorer struct {
	members *members.Service
	scoring *scoring.Service
}

// NewRescorer создаёт задачу пересчёта.
func NewRescorer(memberService *members.Service, scoringService *scoring.Service) *Rescorer {
	return &Rescorer{
		members: memberService,
		scoring: scoringService,
	}
}

// Run обходит всех участников и пересчитывает очки каждого.
// Возвращает количество успешно пересчитанных участников.
func (r *Rescorer) Run(ctx context.Context) (int, error) {
	userIDs, err := r.members.AllUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	var lastErr error
	processed := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}

		identifier := strconv.FormatInt(userID, 10)
		if _, err := r.scoring.ScoreUser(ctx, identifier); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Ошибка пересчёта участника")
			lastErr = err
			continue
		}
		processed++
	}

	log.WithFields(log.Fields{
		"total":     len(userIDs),
		"processed": processed,
	}).Info("Пересчёт очков завершён")

	return processed, lastErr
}
