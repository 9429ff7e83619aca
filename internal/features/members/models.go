// Package members управляет участниками сообщества: регистрацией и флагами.
// models.go описывает структуры данных для работы с таблицей members.
package members

import (
	"strconv"
	"time"
)

// Member представляет участника сообщества в базе данных.
// Каждый пользователь, написавший в COMMUNITY_CHAT_ID или боту,
// автоматически создаётся в этой таблице.
type Member struct {
	ID        int64     `db:"id"`         // Автоинкрементный ID записи в БД
	UserID    int64     `db:"user_id"`    // Telegram user ID (уникальный)
	Username  string    `db:"username"`   // @username (может быть пустым)
	FirstName string    `db:"first_name"` // Имя пользователя
	LastName  string    `db:"last_name"`  // Фамилия (может быть пустой)
	IsAdmin   bool      `db:"is_admin"`   // Флаг администратора
	IsBanned  bool      `db:"is_banned"`  // Флаг бана
	JoinedAt  time.Time `db:"joined_at"`  // Когда вступил
	CreatedAt time.Time `db:"created_at"` // Когда запись создана в БД
	UpdatedAt time.Time `db:"updated_at"` // Последнее обновление записи
}

// Identifier возвращает стабильный ключ пользователя для записи очков.
func (m *Member) Identifier() string {
	return strconv.FormatInt(m.UserID, 10)
}

// UpdateInfo содержит данные для обновления информации о пользователе.
type UpdateInfo struct {
	Username  string
	FirstName string
	LastName  string
}
