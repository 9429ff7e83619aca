package wallets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// TestLinkValidatesAddress: синтаксически некорректный адрес отклоняется
// до обращения к хранилищу.
func TestLinkValidatesAddress(t *testing.T) {
	s := NewService(nil) // до репозитория дело не доходит

	bad := []string{
		"",
		"0x123",
		"abcdef1234567890abcdef1234567890abcdef12",    // без префикса
		"0xZZcdef1234567890abcdef1234567890abcdef12",  // не hex
		"0xabcdef1234567890abcdef1234567890abcdef123", // 41 символ
		"0x abcdef1234567890abcdef1234567890abcdef1",  // пробел внутри
	}
	for _, addr := range bad {
		err := s.Link(context.Background(), "42", addr)
		assert.ErrorIs(t, err, common.ErrInvalidWalletAddress, "адрес %q", addr)
	}
}
