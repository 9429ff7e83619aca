// Package sources — filestore.go читает снапшоты внешних источников из файлов.
//
// Внешние коллекторы (соцсети, блокчейн-индексаторы) выгружают данные
// JSON-файлами в каталог снапшотов:
//
//	<dir>/social/<userIdentifier>.json  — RawSocialData
//	<dir>/wallets/<address>.json        — RawWalletData
//
// Отсутствие файла — штатная ситуация «источник отсутствует» (nil, nil).
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileProvider реализует SocialProvider и WalletProvider поверх каталога
// со снапшотами.
type FileProvider struct {
	dir string
}

// NewFileProvider создаёт провайдер для каталога снапшотов.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// FetchSocial читает снапшот соцсети пользователя.
func (p *FileProvider) FetchSocial(ctx context.Context, userIdentifier string) (*RawSocialData, error) {
	var data RawSocialData
	ok, err := p.read(ctx, filepath.Join("social", sanitize(userIdentifier)+".json"), &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

// FetchWallet читает снапшот активности кошелька.
func (p *FileProvider) FetchWallet(ctx context.Context, address string) (*RawWalletData, error) {
	var data RawWalletData
	ok, err := p.read(ctx, filepath.Join("wallets", sanitize(address)+".json"), &data)
	if err != nil || !ok {
		return nil, err
	}
	if data.Address == "" {
		data.Address = address
	}
	return &data, nil
}

// read декодирует снапшот в v. Возвращает false без ошибки, если файла нет.
func (p *FileProvider) read(ctx context.Context, rel string, v interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, err := os.ReadFile(filepath.Join(p.dir, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("чтение снапшота %s: %w", rel, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("разбор снапшота %s: %w", rel, err)
	}
	return true, nil
}

// sanitize не даёт идентификатору выйти за пределы каталога снапшотов.
func sanitize(id string) string {
	id = strings.ReplaceAll(id, string(os.PathSeparator), "_")
	return strings.ReplaceAll(id, "..", "_")
}
