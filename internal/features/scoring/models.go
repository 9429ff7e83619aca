// Package scoring реализует расчёт и хранение influence-очков.
// models.go описывает структуры хранения записи очков.
package scoring

import (
	"time"

	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
)

// WalletScore — очки одного привязанного кошелька.
// Кошельков у пользователя может быть несколько, каждый вносит
// свой вклад в итог независимо.
type WalletScore struct {
	WalletAddress string  `db:"wallet_address"`
	Score         float64 `db:"score"`
}

// ScoreRecord — запись очков пользователя в базе данных.
// Единственный владелец записи — Store; никто другой её не меняет.
//
// Инвариант после каждого успешного сохранения:
//
//	TotalScore == SocialScore + CommunityScore + Σ Wallets[i].Score
//
// Итог пересчитывается из компонентов при каждой записи, никогда
// не накапливается инкрементально.
type ScoreRecord struct {
	ID             int64     `db:"id"`              // Автоинкрементный ID записи в БД
	UserIdentifier string    `db:"user_identifier"` // Стабильный ключ пользователя (уникальный)
	SocialScore    float64   `db:"social_score"`    // Очки соцсети
	CommunityScore float64   `db:"community_score"` // Очки сообщества (community + telegram)
	TotalScore     float64   `db:"total_score"`     // Инвариантная сумма
	Version        int64     `db:"version"`         // Версия для optimistic concurrency (CAS)
	Badges         []string  `db:"badges"`          // Имена полученных бейджей
	Wallets        []WalletScore
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// RecomputeTotal пересчитывает TotalScore из компонентов.
func (r *ScoreRecord) RecomputeTotal() {
	total := r.SocialScore + r.CommunityScore
	for _, w := range r.Wallets {
		total += w.Score
	}
	r.TotalScore = total
}

// BadgeUpdate — частичное обновление списка бейджей.
// Names замещают в записи только бейджи источников из Refreshed.
// Бейджи неопрошенных источников сохраняются: недоступность одного
// источника не стирает заработанное по нему, как и его очки.
type BadgeUpdate struct {
	Names     []string        // Свежевыданные бейджи
	Refreshed []badges.Source // Источники, чьи бейджи пересчитаны
}

// CategoryUpdates — частичное обновление записи очков.
// nil-поле означает «категорию не трогать»: обновление аддитивно
// по полям, а не replace-all.
type CategoryUpdates struct {
	Social    *float64      // Новые очки соцсети
	Community *float64      // Новые очки сообщества
	Wallets   []WalletScore // Очки кошельков: каждый найти по адресу или добавить
	Badges    *BadgeUpdate  // Обновление бейджей (nil = не трогать)
}
