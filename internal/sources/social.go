// Package sources описывает строгие формы сырых данных трёх источников:
// соцсеть (Twitter/X), кошелёк и Telegram-сообщество.
//
// Внешний слой-коллектор обязан привести ответ стороннего API к этим
// структурам ДО передачи в скоринг: отсутствующее поле = нулевое значение.
// Ядро скоринга никогда не работает с «сырым» JSON напрямую.
package sources

import "time"

// RawSocialData — нормализованные метрики аккаунта соцсети.
// Любое поле может отсутствовать в ответе API — тогда здесь ноль/false.
type RawSocialData struct {
	Followers            int64 // Количество подписчиков
	Following            int64 // На скольких подписан сам
	Statuses             int64 // Количество постов
	Favourites           int64 // Количество лайков
	Listed               int64 // В скольких списках состоит
	Media                int64 // Количество медиа-постов
	Verified             bool  // Галочка верификации
	CreatorSubscriptions int64 // Платные подписки на автора
	SuperFollowEligible  bool  // Право на платные подписки
	Retweets             int64 // Ретвиты закреплённого поста
	Quotes               int64 // Цитирования
	Replies              int64 // Ответы
	HasPinnedPost        bool  // Есть ли закреплённый пост

	// Дата создания аккаунта. Нулевое значение = неизвестна,
	// тогда возраст аккаунта считается равным нулю.
	CreatedAt time.Time
}

// AccountAgeYears возвращает возраст аккаунта в годах на момент now.
// Год считается как 365.25 суток.
func (s *RawSocialData) AccountAgeYears(now time.Time) float64 {
	if s.CreatedAt.IsZero() || s.CreatedAt.After(now) {
		return 0
	}
	const yearHours = 365.25 * 24
	return now.Sub(s.CreatedAt).Hours() / yearHours
}
