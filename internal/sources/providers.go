// Package sources — providers.go описывает границу с внешними коллекторами.
//
// Провайдер отвечает за вызов стороннего API и приведение ответа к строгой
// форме Raw*Data. Ошибка или таймаут провайдера означает для скоринга
// «источник отсутствует» — это не ошибка, категория просто пропускается.
package sources

import "context"

// SocialProvider отдаёт метрики аккаунта соцсети по его идентификатору.
type SocialProvider interface {
	FetchSocial(ctx context.Context, userIdentifier string) (*RawSocialData, error)
}

// WalletProvider отдаёт активность кошелька по его адресу.
type WalletProvider interface {
	FetchWallet(ctx context.Context, address string) (*RawWalletData, error)
}

// CommunityProvider отдаёт активность пользователя в сообществе.
type CommunityProvider interface {
	FetchCommunity(ctx context.Context, userIdentifier string) (*RawCommunityData, error)
}
