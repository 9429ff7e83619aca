// Package sources — wallet.go описывает нормализованные данные кошелька.
package sources

import "github.com/shopspring/decimal"

// TokenBalance — баланс одного токена в кошельке.
type TokenBalance struct {
	Symbol  string
	Balance decimal.Decimal
}

// DeFiPosition — одна DeFi-позиция (стейкинг, пул ликвидности и т.п.).
type DeFiPosition struct {
	Protocol string
	Chain    string
}

// NFT — один NFT в кошельке.
type NFT struct {
	Collection string
	TokenID    string
}

// RawWalletData — нормализованная активность одного кошелька.
// Списки по умолчанию пустые, числа — нулевые.
type RawWalletData struct {
	Address                 string          // Адрес кошелька
	NativeBalance           decimal.Decimal // Баланс нативной монеты
	Tokens                  []TokenBalance  // Балансы токенов
	ActiveChains            []string        // Сети, где была активность
	DeFiPositions           []DeFiPosition  // Открытые DeFi-позиции
	HasResolvedDomain       bool            // Есть ли привязанный домен (ENS и т.п.)
	NFTs                    []NFT           // NFT в кошельке
	TransactionCount        int64           // Всего транзакций
	UniqueTokenInteractions int64           // С каким числом разных токенов взаимодействовал
}

// MergeWallets объединяет несколько кошельков в одну картину активности:
// списки конкатенируются (сети — без дубликатов), счётчики суммируются.
// Используется для выдачи бейджей по всем кошелькам сразу.
// Пустой список кошельков = источник отсутствует (nil).
func MergeWallets(wallets []RawWalletData) *RawWalletData {
	if len(wallets) == 0 {
		return nil
	}
	merged := &RawWalletData{}
	chains := make(map[string]struct{})
	for i := range wallets {
		w := &wallets[i]
		merged.NativeBalance = merged.NativeBalance.Add(w.NativeBalance)
		merged.Tokens = append(merged.Tokens, w.Tokens...)
		merged.DeFiPositions = append(merged.DeFiPositions, w.DeFiPositions...)
		merged.NFTs = append(merged.NFTs, w.NFTs...)
		merged.TransactionCount += w.TransactionCount
		merged.UniqueTokenInteractions += w.UniqueTokenInteractions
		if w.HasResolvedDomain {
			merged.HasResolvedDomain = true
		}
		for _, c := range w.ActiveChains {
			if _, ok := chains[c]; !ok {
				chains[c] = struct{}{}
				merged.ActiveChains = append(merged.ActiveChains, c)
			}
		}
	}
	return merged
}

// UniqueCollections возвращает число различных NFT-коллекций в кошельке.
func (w *RawWalletData) UniqueCollections() int {
	seen := make(map[string]struct{}, len(w.NFTs))
	for _, n := range w.NFTs {
		seen[n.Collection] = struct{}{}
	}
	return len(seen)
}
