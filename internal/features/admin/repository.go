// Package admin — repository.go хранит сессии панели и журнал входов.
//
// Сессия живёт в admin_sessions до expires_at; каждая попытка ввода
// пароля (удачная и нет) пишется в admin_login_attempts — по этому
// журналу работает защита от перебора.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Repository работает с таблицами админ-панели.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий админ-панели.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession открывает новую сессию администратора.
// Старые сессии пользователя при этом не трогаются: активной
// считается самая свежая неистёкшая.
func (r *Repository) CreateSession(ctx context.Context, session *AdminSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_sessions (user_id, session_token, expires_at, is_active)
		 VALUES ($1, $2, $3, TRUE)`,
		session.UserID, session.SessionToken, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("админ-сессия: создание: %w", err)
	}
	return nil
}

// GetActiveSession возвращает самую свежую живую сессию пользователя.
// Нет живой сессии — common.ErrSessionExpired: для вызывающего
// «не залогинен» и «сессия истекла» означают одно и то же.
func (r *Repository) GetActiveSession(ctx context.Context, userID int64) (*AdminSession, error) {
	var s AdminSession
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, session_token, authenticated_at, expires_at, last_activity, is_active
		 FROM admin_sessions
		 WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		 ORDER BY authenticated_at DESC
		 LIMIT 1`,
		userID,
	).Scan(
		&s.ID, &s.UserID, &s.SessionToken, &s.AuthenticatedAt,
		&s.ExpiresAt, &s.LastActivity, &s.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("админ-сессия: чтение: %w", err)
	}
	return &s, nil
}

// DeactivateSession закрывает все сессии пользователя (кнопка «Выйти»).
func (r *Repository) DeactivateSession(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("админ-сессия: завершение: %w", err)
	}
	return nil
}

// TouchSession отмечает активность в живой сессии.
func (r *Repository) TouchSession(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET last_activity = NOW()
		 WHERE user_id = $1 AND is_active = TRUE`, userID)
	return err
}

// LogAttempt пишет попытку входа в журнал.
func (r *Repository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`,
		userID, success)
	return err
}

// CountRecentFailures считает неудачные попытки входа за период.
// По этому счётчику сервис блокирует перебор пароля.
func (r *Repository) CountRecentFailures(ctx context.Context, userID int64, period time.Duration) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM admin_login_attempts
		 WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2`,
		userID, time.Now().Add(-period),
	).Scan(&count)
	return count, err
}
