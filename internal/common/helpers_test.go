package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizePoints(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "баллов"},
		{1, "балл"},
		{2, "балла"},
		{4, "балла"},
		{5, "баллов"},
		{11, "баллов"},
		{12, "баллов"},
		{14, "баллов"},
		{21, "балл"},
		{23, "балла"},
		{100, "баллов"},
		{101, "балл"},
		{111, "баллов"},
		{-2, "балла"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizePoints(tt.n), "n=%d", tt.n)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "87 баллов", FormatScore(87.5))
	assert.Equal(t, "1 балл", FormatScore(1.2))
	assert.Equal(t, "0 баллов", FormatScore(0))
}

// TestFormatDateTime: вывод всегда по Москве (UTC+3, без перевода часов).
func TestFormatDateTime(t *testing.T) {
	utc := time.Date(2026, 1, 2, 9, 4, 0, 0, time.UTC)
	assert.Equal(t, "02.01.2026 12:04", FormatDateTime(utc))

	// Переход через полночь по Москве
	late := time.Date(2026, 3, 15, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "16.03.2026 01:30", FormatDateTime(late))
}

func TestPluralizeWallets(t *testing.T) {
	assert.Equal(t, "кошелёк", PluralizeWallets(1))
	assert.Equal(t, "кошелька", PluralizeWallets(3))
	assert.Equal(t, "кошельков", PluralizeWallets(7))
	assert.Equal(t, "кошельков", PluralizeWallets(11))
}
