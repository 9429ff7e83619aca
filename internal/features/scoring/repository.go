// Package scoring — repository.go выполняет операции с таблицами
// scores и score_wallets в PostgreSQL. Реализует Backend для Store.
//
// Запись защищена optimistic concurrency: колонка version растёт при
// каждом сохранении, UPDATE срабатывает только при совпадении версии.
// Конфликт версий — не сбой БД, а сигнал Store перечитать запись.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Repository работает с таблицами scores и score_wallets.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий очков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Load возвращает запись очков пользователя вместе с кошельками.
func (r *Repository) Load(ctx context.Context, userIdentifier string) (*ScoreRecord, error) {
	query := `
		SELECT id, user_identifier, social_score, community_score, total_score,
		       version, badges, created_at, updated_at
		FROM scores WHERE user_identifier = $1
	`
	var rec ScoreRecord
	err := r.db.QueryRow(ctx, query, userIdentifier).Scan(
		&rec.ID, &rec.UserIdentifier, &rec.SocialScore, &rec.CommunityScore,
		&rec.TotalScore, &rec.Version, &rec.Badges, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения записи очков: %w", err)
	}

	wallets, err := r.loadWallets(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Wallets = wallets
	return &rec, nil
}

// Save сохраняет запись целиком: строку scores и все её кошельки.
// Версия в БД должна совпасть с версией записи — иначе ErrVersionConflict.
func (r *Repository) Save(ctx context.Context, record *ScoreRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if record.ID == 0 {
		if err := r.insertScore(ctx, tx, record); err != nil {
			return err
		}
	} else {
		if err := r.updateScore(ctx, tx, record); err != nil {
			return err
		}
	}

	// Кошельки переписываем полностью — их немного, а снимок в записи
	// уже содержит результат find-or-append
	if _, err := tx.Exec(ctx, `DELETE FROM score_wallets WHERE score_id = $1`, record.ID); err != nil {
		return fmt.Errorf("ошибка очистки кошельков: %w", err)
	}
	for _, w := range record.Wallets {
		_, err := tx.Exec(ctx, `
			INSERT INTO score_wallets (score_id, wallet_address, score)
			VALUES ($1, $2, $3)
		`, record.ID, w.WalletAddress, w.Score)
		if err != nil {
			return fmt.Errorf("ошибка записи кошелька %s: %w", w.WalletAddress, err)
		}
	}

	return tx.Commit(ctx)
}

// insertScore создаёт новую строку scores (версия 1).
// Гонка двух создателей ловится уникальным индексом user_identifier.
func (r *Repository) insertScore(ctx context.Context, tx pgx.Tx, record *ScoreRecord) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO scores (user_identifier, social_score, community_score, total_score, version, badges)
		VALUES ($1, $2, $3, $4, 1, $5)
		RETURNING id, created_at, updated_at
	`, record.UserIdentifier, record.SocialScore, record.CommunityScore,
		record.TotalScore, record.Badges,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if isUniqueViolation(err) {
		// Параллельный вызов создал запись первым
		return common.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("ошибка создания записи очков: %w", err)
	}
	record.Version = 1
	return nil
}

// updateScore обновляет существующую строку с проверкой версии (CAS).
func (r *Repository) updateScore(ctx context.Context, tx pgx.Tx, record *ScoreRecord) error {
	tag, err := tx.Exec(ctx, `
		UPDATE scores
		SET social_score = $3, community_score = $4, total_score = $5,
		    badges = $6, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`, record.ID, record.Version, record.SocialScore, record.CommunityScore,
		record.TotalScore, record.Badges)
	if err != nil {
		return fmt.Errorf("ошибка обновления записи очков: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Версия в БД уже другая — последний писатель НЕ побеждает молча
		return common.ErrVersionConflict
	}
	record.Version++
	return nil
}

// loadWallets возвращает кошельки записи в порядке привязки.
func (r *Repository) loadWallets(ctx context.Context, scoreID int64) ([]WalletScore, error) {
	rows, err := r.db.Query(ctx, `
		SELECT wallet_address, score
		FROM score_wallets WHERE score_id = $1
		ORDER BY id
	`, scoreID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения кошельков: %w", err)
	}
	defer rows.Close()

	var wallets []WalletScore
	for rows.Next() {
		var w WalletScore
		if err := rows.Scan(&w.WalletAddress, &w.Score); err != nil {
			return nil, fmt.Errorf("ошибка сканирования кошелька: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// Top возвращает limit лучших записей по total_score.
// Используется командой /top.
func (r *Repository) Top(ctx context.Context, limit int) ([]ScoreRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_identifier, social_score, community_score, total_score,
		       version, badges, created_at, updated_at
		FROM scores
		ORDER BY total_score DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения топа: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserIdentifier, &rec.SocialScore, &rec.CommunityScore,
			&rec.TotalScore, &rec.Version, &rec.Badges, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования топа: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// isUniqueViolation распознаёт нарушение уникального индекса PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
