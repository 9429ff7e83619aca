// Package scoring — store.go реализует устойчивую к сбоям запись очков.
//
// Store оборачивает бэкенд хранения в цикл read-modify-write:
// загрузить запись (или создать новую), применить частичное обновление,
// пересчитать инвариантную сумму, сохранить. При сбое чтения/записи или
// конфликте версий — пауза и повтор С НАЧАЛА (перечитывание, а не
// дозапись), чтобы не работать с устаревшим состоянием.
package scoring

import (
	"context"
	"errors"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
)

// Backend — граница хранилища записей очков.
type Backend interface {
	// Load возвращает запись по идентификатору пользователя.
	// Отсутствие записи — common.ErrRecordNotFound.
	Load(ctx context.Context, userIdentifier string) (*ScoreRecord, error)
	// Save сохраняет запись. При несовпадении версии (кто-то успел
	// записать раньше) — common.ErrVersionConflict.
	Save(ctx context.Context, record *ScoreRecord) error
}

// Store — устойчивое к сбоям хранилище очков поверх Backend.
type Store struct {
	backend  Backend
	attempts int           // Максимум попыток (по умолчанию 3)
	delay    time.Duration // Пауза между попытками (по умолчанию 1s)

	// sleep подменяется в тестах, чтобы не ждать реальные секунды
	sleep func(ctx context.Context, d time.Duration) error
}

// NewStore создаёт Store с заданной политикой повторов.
func NewStore(backend Backend, attempts int, delay time.Duration) *Store {
	if attempts <= 0 {
		attempts = 3
	}
	return &Store{
		backend:  backend,
		attempts: attempts,
		delay:    delay,
		sleep:    sleepCtx,
	}
}

// Persist применяет частичное обновление к записи пользователя.
//
// Шаги одной попытки:
//  1. Загрузить запись; если её нет — создать новую с нулями
//  2. Применить только присутствующие в updates категории
//  3. Для кошелька — найти по адресу и обновить, иначе добавить
//  4. Пересчитать TotalScore из компонентов и сохранить
//
// При сбое попытка повторяется до attempts раз с паузой delay.
// После исчерпания попыток возвращается рассчитанная, но НЕ сохранённая
// запись ВМЕСТЕ с последней ошибкой: вызывающий должен уметь отличить
// «посчитали, но не сохранили» от «не смогли посчитать».
func (s *Store) Persist(ctx context.Context, userIdentifier string, updates CategoryUpdates) (*ScoreRecord, error) {
	var lastErr error
	var lastRecord *ScoreRecord

	for attempt := 1; attempt <= s.attempts; attempt++ {
		record, err := s.loadOrCreate(ctx, userIdentifier)
		if err != nil {
			lastErr = err
			log.WithError(err).WithFields(log.Fields{
				"user":    userIdentifier,
				"attempt": attempt,
			}).Warn("Сбой чтения записи очков")
			if !s.wait(ctx, attempt) {
				break
			}
			continue
		}

		applyUpdates(record, updates)
		record.RecomputeTotal()
		lastRecord = record

		if err := s.backend.Save(ctx, record); err != nil {
			lastErr = err
			if errors.Is(err, common.ErrVersionConflict) {
				// Параллельная запись успела раньше — перечитываем и повторяем
				log.WithFields(log.Fields{
					"user":    userIdentifier,
					"attempt": attempt,
				}).Debug("Конфликт версий, перечитываем запись")
			} else {
				log.WithError(err).WithFields(log.Fields{
					"user":    userIdentifier,
					"attempt": attempt,
				}).Warn("Сбой записи очков")
			}
			if !s.wait(ctx, attempt) {
				break
			}
			continue
		}

		return record, nil
	}

	log.WithError(lastErr).WithField("user", userIdentifier).
		Error("Запись очков не сохранена после всех попыток")
	return lastRecord, lastErr
}

// Load возвращает запись очков пользователя.
// Отсутствие истории — не ошибка: возвращается нулевая запись.
func (s *Store) Load(ctx context.Context, userIdentifier string) (*ScoreRecord, error) {
	record, err := s.backend.Load(ctx, userIdentifier)
	if errors.Is(err, common.ErrRecordNotFound) {
		return &ScoreRecord{UserIdentifier: userIdentifier}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// loadOrCreate загружает запись или создаёт новую in-memory заготовку.
func (s *Store) loadOrCreate(ctx context.Context, userIdentifier string) (*ScoreRecord, error) {
	record, err := s.backend.Load(ctx, userIdentifier)
	if errors.Is(err, common.ErrRecordNotFound) {
		// Первая успешная попытка скоринга создаст запись при Save
		return &ScoreRecord{UserIdentifier: userIdentifier}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// wait делает паузу перед следующей попыткой.
// После последней попытки не ждём. Возвращает false при отмене контекста.
func (s *Store) wait(ctx context.Context, attempt int) bool {
	if attempt >= s.attempts {
		return false
	}
	return s.sleep(ctx, s.delay) == nil
}

// applyUpdates применяет частичное обновление: категории, которых нет
// в updates, остаются нетронутыми.
func applyUpdates(record *ScoreRecord, updates CategoryUpdates) {
	if updates.Social != nil {
		record.SocialScore = *updates.Social
	}
	if updates.Community != nil {
		record.CommunityScore = *updates.Community
	}
	if updates.Badges != nil {
		record.Badges = mergeBadges(record.Badges, updates.Badges)
	}
	for _, w := range updates.Wallets {
		upsertWallet(record, w)
	}
}

// mergeBadges пересобирает список бейджей записи: бейджи источников
// из upd.Refreshed замещаются свежевыданными, остальные (включая
// имена без известного источника) сохраняются как есть.
func mergeBadges(stored []string, upd *BadgeUpdate) []string {
	refreshed := make(map[badges.Source]bool, len(upd.Refreshed))
	for _, src := range upd.Refreshed {
		refreshed[src] = true
	}

	seen := make(map[string]bool, len(stored)+len(upd.Names))
	merged := make([]string, 0, len(stored)+len(upd.Names))
	for _, name := range stored {
		if src, ok := badges.SourceOf(name); ok && refreshed[src] {
			continue
		}
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}
	for _, name := range upd.Names {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged
}

// upsertWallet обновляет очки кошелька по адресу или добавляет новый.
// Повторная привязка того же кошелька обновляет его очки на месте,
// а не плодит дубликаты.
func upsertWallet(record *ScoreRecord, wallet WalletScore) {
	for i := range record.Wallets {
		if record.Wallets[i].WalletAddress == wallet.WalletAddress {
			record.Wallets[i].Score = wallet.Score
			return
		}
	}
	record.Wallets = append(record.Wallets, wallet)
}

// sleepCtx ждёт d или отмену контекста.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
