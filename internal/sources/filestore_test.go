package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestFileProviderSocial: снапшот читается и разбирается, отсутствие
// файла — штатное «источник отсутствует».
func TestFileProviderSocial(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "social/42.json", `{
		"Followers": 15000,
		"Verified": true,
		"CreatedAt": "2020-06-01T00:00:00Z"
	}`)

	p := NewFileProvider(dir)
	ctx := context.Background()

	data, err := p.FetchSocial(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, int64(15000), data.Followers)
	assert.True(t, data.Verified)
	assert.False(t, data.CreatedAt.IsZero())

	absent, err := p.FetchSocial(ctx, "нет-такого")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

// TestFileProviderWallet: адрес подставляется из запроса, если его
// нет в самом снапшоте.
func TestFileProviderWallet(t *testing.T) {
	dir := t.TempDir()
	addr := "0xabcdef1234567890abcdef1234567890abcdef12"
	writeSnapshot(t, dir, "wallets/"+addr+".json", `{
		"NativeBalance": "1.5",
		"ActiveChains": ["eth", "polygon"],
		"TransactionCount": 250
	}`)

	p := NewFileProvider(dir)

	data, err := p.FetchWallet(context.Background(), addr)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, addr, data.Address)
	assert.Equal(t, "1.5", data.NativeBalance.String())
	assert.Len(t, data.ActiveChains, 2)
}

// TestFileProviderBadJSON: битый снапшот — ошибка, а не тихий ноль.
func TestFileProviderBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "social/42.json", `{не json`)

	_, err := NewFileProvider(dir).FetchSocial(context.Background(), "42")
	assert.Error(t, err)
}
