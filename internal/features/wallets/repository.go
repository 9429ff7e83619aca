// Package wallets — repository.go выполняет операции с таблицей linked_wallets.
package wallets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицей linked_wallets.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий кошельков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Link привязывает адрес к пользователю. Повторная привязка того же
// адреса тем же пользователем — no-op.
func (r *Repository) Link(ctx context.Context, userIdentifier, address string) error {
	query := `
		INSERT INTO linked_wallets (user_identifier, address)
		VALUES ($1, $2)
		ON CONFLICT (address) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userIdentifier, address)
	if err != nil {
		return fmt.Errorf("ошибка привязки кошелька: %w", err)
	}
	return nil
}

// Owner возвращает идентификатор владельца адреса.
// Пустая строка = адрес никому не привязан.
func (r *Repository) Owner(ctx context.Context, address string) (string, error) {
	query := `SELECT user_identifier FROM linked_wallets WHERE address = $1`
	var owner string
	err := r.db.QueryRow(ctx, query, address).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка поиска владельца кошелька: %w", err)
	}
	return owner, nil
}

// Addresses возвращает адреса пользователя в порядке привязки.
func (r *Repository) Addresses(ctx context.Context, userIdentifier string) ([]string, error) {
	query := `
		SELECT address FROM linked_wallets
		WHERE user_identifier = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userIdentifier)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения адресов: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("ошибка сканирования адреса: %w", err)
		}
		addresses = append(addresses, addr)
	}
	return addresses, rows.Err()
}
