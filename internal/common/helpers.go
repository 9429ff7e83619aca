// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование очков, работа с временем.
package common

import (
	"fmt"
	"math"
	"time"
)

// PluralizePoints возвращает правильную форму слова «балл» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "балл" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "балла" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "баллов" (0, 5-20, 25-30, 100, ...)
func PluralizePoints(n int64) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	// Единственное число: 1, 21, 31, 101 (но НЕ 11, 111)
	if lastDigit == 1 && lastTwoDigits != 11 {
		return "балл"
	}

	// Малое множественное: 2-4, 22-24, 32-34 (но НЕ 12-14)
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "балла"
	}

	return "баллов"
}

// FormatScore форматирует очки в читабельную строку.
// Дробная часть отбрасывается только в сообщениях, не в расчётах.
// Пример: FormatScore(87.5) → "87 баллов"
func FormatScore(score float64) string {
	n := int64(score)
	return fmt.Sprintf("%d %s", n, PluralizePoints(n))
}

// PluralizeWallets возвращает правильную форму слова «кошелёк».
func PluralizeWallets(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "кошелёк"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "кошелька"
	}
	return "кошельков"
}

// moscowLocation возвращает часовой пояс Москвы.
// Без tzdata в контейнере — UTC+3 вручную (Москва без перевода часов).
func moscowLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// GetMoscowTime возвращает текущее время в часовом поясе Москвы.
// Используется в отчётах о пересчёте очков.
func GetMoscowTime() time.Time {
	return time.Now().In(moscowLocation())
}

// FormatDateTime форматирует время по Москве в "02.01.2006 15:04".
// Используется для отображения даты последнего пересчёта.
func FormatDateTime(t time.Time) string {
	return t.In(moscowLocation()).Format("02.01.2006 15:04")
}
