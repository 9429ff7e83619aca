// Package postgres — queries.go содержит протокол накатки миграций схемы.
//
// Каждая миграция применяется в одной транзакции вместе с отметкой
// её номера в schema_migrations: схема либо изменилась и отмечена,
// либо осталась нетронутой. Повторная накатка того же номера — no-op.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplyMigration накатывает одну миграцию схемы скоринга.
// Порядок и номера миграций задаёт вызывающий (internal/app),
// здесь только транзакционность и идемпотентность.
func ApplyMigration(ctx context.Context, pool *pgxpool.Pool, version int, sql string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("миграция %d: начало транзакции: %w", version, err)
	}
	defer tx.Rollback(ctx)

	var applied bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&applied); err != nil {
		return fmt.Errorf("миграция %d: проверка версии: %w", version, err)
	}
	if applied {
		return nil
	}

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("миграция %d: выполнение: %w", version, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, version,
	); err != nil {
		return fmt.Errorf("миграция %d: запись версии: %w", version, err)
	}

	return tx.Commit(ctx)
}
