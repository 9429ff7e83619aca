package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
	"github.com/SL177Y-0/MVP-sub000/internal/config"
)

// TestVerifyPasswordRejectsNonAdmin: пароль не-администратора не
// проверяется вовсе — ни обращения к журналу попыток, ни сессии.
func TestVerifyPasswordRejectsNonAdmin(t *testing.T) {
	service := NewService(nil, &config.Config{AdminIDs: []int64{1}})

	err := service.VerifyPassword(context.Background(), 99, "секрет")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotAdmin)
}

func TestIsAdmin(t *testing.T) {
	service := NewService(nil, &config.Config{AdminIDs: []int64{1, 7}})

	assert.True(t, service.IsAdmin(7))
	assert.False(t, service.IsAdmin(2))
}
