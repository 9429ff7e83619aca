// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях скоринга.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки хранилища очков
var (
	// ErrRecordNotFound — запись очков не найдена в базе
	ErrRecordNotFound = errors.New("запись очков не найдена")
	// ErrVersionConflict — версия записи изменилась между чтением и записью
	ErrVersionConflict = errors.New("конфликт версий записи очков")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки кошельков
var (
	// ErrWalletAlreadyLinked — кошелёк уже привязан к другому пользователю
	ErrWalletAlreadyLinked = errors.New("кошелёк уже привязан к другому пользователю")
	// ErrInvalidWalletAddress — некорректный адрес кошелька
	ErrInvalidWalletAddress = errors.New("некорректный адрес кошелька")
)

// Ошибки конфигурации скоринга
var (
	// ErrMissingWeight — метрика калькулятора не имеет веса в таблице весов
	ErrMissingWeight = errors.New("метрика не имеет веса в таблице весов")
	// ErrBadThresholds — пороги бейджа не возрастают (silver ≤ gold ≤ platinum)
	ErrBadThresholds = errors.New("пороги бейджа должны возрастать")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
