// Package wallets управляет привязкой кошельков к пользователям.
// models.go описывает структуру таблицы linked_wallets.
package wallets

import "time"

// LinkedWallet — привязка кошелька к пользователю.
// Один адрес принадлежит ровно одному пользователю; у пользователя
// может быть несколько адресов, каждый оценивается независимо.
type LinkedWallet struct {
	ID             int64     `db:"id"`              // Автоинкрементный ID записи в БД
	UserIdentifier string    `db:"user_identifier"` // Владелец кошелька
	Address        string    `db:"address"`         // Адрес кошелька (уникальный)
	LinkedAt       time.Time `db:"linked_at"`       // Когда привязан
}
