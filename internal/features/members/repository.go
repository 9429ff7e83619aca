// Package members — repository.go выполняет операции с таблицей members.
package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Repository работает с таблицей members.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий участников.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт нового участника.
func (r *Repository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (user_id, username, first_name, last_name, is_admin, is_banned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		member.UserID, member.Username, member.FirstName, member.LastName,
		member.IsAdmin, member.IsBanned,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания участника: %w", err)
	}
	return nil
}

// GetByUserID возвращает участника по его Telegram user ID.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Member, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name,
		       is_admin, is_banned, joined_at, created_at, updated_at
		FROM members WHERE user_id = $1
	`
	var m Member
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.ID, &m.UserID, &m.Username, &m.FirstName, &m.LastName,
		&m.IsAdmin, &m.IsBanned, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения участника: %w", err)
	}
	return &m, nil
}

// GetByUsername возвращает участника по @username (без @).
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Member, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name,
		       is_admin, is_banned, joined_at, created_at, updated_at
		FROM members WHERE username = $1
	`
	var m Member
	err := r.db.QueryRow(ctx, query, username).Scan(
		&m.ID, &m.UserID, &m.Username, &m.FirstName, &m.LastName,
		&m.IsAdmin, &m.IsBanned, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения участника: %w", err)
	}
	return &m, nil
}

// Exists проверяет, зарегистрирован ли пользователь.
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	return exists, err
}

// UpdateInfo обновляет имя и username участника.
func (r *Repository) UpdateInfo(ctx context.Context, userID int64, info UpdateInfo) error {
	query := `
		UPDATE members
		SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, info.Username, info.FirstName, info.LastName)
	if err != nil {
		return fmt.Errorf("ошибка обновления участника: %w", err)
	}
	return nil
}

// AllUserIDs возвращает ID всех участников. Используется ночным пересчётом.
func (r *Repository) AllUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM members WHERE NOT is_banned ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения участников: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования участника: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
