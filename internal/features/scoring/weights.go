// Package scoring — weights.go содержит таблицу весов метрик.
//
// Таблица неизменяемая: создаётся один раз при старте и валидируется
// fail-fast. Метрика без веса — ошибка конфигурации, а не тихий ноль:
// иначе часть очков молча пропадёт.
package scoring

import (
	"fmt"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Имена метрик соцсети.
const (
	MetricFollowers            = "followers_count"
	MetricFollowing            = "friends_count"
	MetricStatuses             = "statuses_count"
	MetricFavourites           = "favourites_count"
	MetricListed               = "listed_count"
	MetricMedia                = "media_count"
	MetricVerified             = "verified"
	MetricCreatorSubscriptions = "creator_subscriptions_count"
	MetricSuperFollowEligible  = "super_follow_eligible"
	MetricAccountAgeYears      = "account_age_years"
	MetricRetweets             = "retweet_count"
	MetricQuotes               = "quote_count"
	MetricReplies              = "reply_count"
	MetricPinnedPost           = "pinned_post"
)

// Имена метрик кошелька (категории crypto и nft).
const (
	MetricNativeBalance           = "native_balance"
	MetricTokenCount              = "token_count"
	MetricActiveChainCount        = "active_chain_count"
	MetricDeFiPositionCount       = "defi_position_count"
	MetricResolvedDomain          = "resolved_domain"
	MetricTransactionCount        = "transaction_count"
	MetricUniqueTokenInteractions = "unique_token_interactions"
	MetricNFTCount                = "nft_count"
	MetricNFTCollectionCount      = "nft_collection_count"
)

// Имена метрик сообщества (категории community и telegram).
const (
	MetricGroupCount         = "group_count"
	MetricPollPermission     = "poll_permission"
	MetricPinPermission      = "pin_permission"
	MetricMessageCount       = "message_count"
	MetricPinnedMessageCount = "pinned_message_count"
	MetricHashtagCount       = "hashtag_count"
	MetricMentionCount       = "mention_count"
	MetricKeywordMatchTotal  = "keyword_match_total"
)

// WeightTable — неизменяемая таблица «имя метрики → вес».
type WeightTable map[string]float64

// DefaultWeights возвращает таблицу весов по умолчанию.
// Веса подобраны так, чтобы активный аккаунт набирал десятки баллов
// на категорию, а плоские бонусы (verified и т.п.) добавлялись
// один раз, без умножения на количество.
func DefaultWeights() WeightTable {
	return WeightTable{
		// --- Соцсеть ---
		MetricFollowers:            0.001,
		MetricFollowing:            0.001,
		MetricStatuses:             0.003,
		MetricFavourites:           0.002,
		MetricListed:               0.01,
		MetricMedia:                0.01,
		MetricVerified:             20, // плоский бонус за галочку
		MetricCreatorSubscriptions: 0.5,
		MetricSuperFollowEligible:  10, // плоский бонус
		MetricAccountAgeYears:      2,
		MetricRetweets:             0.005,
		MetricQuotes:               0.005,
		MetricReplies:              0.005,
		MetricPinnedPost:           5, // плоский бонус за закреп

		// --- Кошелёк: crypto ---
		MetricNativeBalance:           10,
		MetricTokenCount:              2,
		MetricActiveChainCount:        5,
		MetricDeFiPositionCount:       5,
		MetricResolvedDomain:          5, // плоский бонус за домен
		MetricTransactionCount:        0.01,
		MetricUniqueTokenInteractions: 1,

		// --- Кошелёк: nft ---
		MetricNFTCount:           2,
		MetricNFTCollectionCount: 3,

		// --- Сообщество: community ---
		MetricGroupCount:     2,
		MetricPollPermission: 5, // плоский бонус за право опросов
		MetricPinPermission:  5, // плоский бонус за право закрепов

		// --- Сообщество: telegram ---
		MetricMessageCount:       0.1,
		MetricPinnedMessageCount: 2,
		MetricHashtagCount:       0.5,
		MetricMentionCount:       0.5,
		MetricKeywordMatchTotal:  1,
	}
}

// requiredMetrics — полный список метрик, на которые ссылается калькулятор.
// Validate проверяет, что каждая из них имеет вес.
var requiredMetrics = []string{
	MetricFollowers, MetricFollowing, MetricStatuses, MetricFavourites,
	MetricListed, MetricMedia, MetricVerified, MetricCreatorSubscriptions,
	MetricSuperFollowEligible, MetricAccountAgeYears, MetricRetweets,
	MetricQuotes, MetricReplies, MetricPinnedPost,
	MetricNativeBalance, MetricTokenCount, MetricActiveChainCount,
	MetricDeFiPositionCount, MetricResolvedDomain, MetricTransactionCount,
	MetricUniqueTokenInteractions, MetricNFTCount, MetricNFTCollectionCount,
	MetricGroupCount, MetricPollPermission, MetricPinPermission,
	MetricMessageCount, MetricPinnedMessageCount, MetricHashtagCount,
	MetricMentionCount, MetricKeywordMatchTotal,
}

// Validate проверяет, что каждая метрика калькулятора имеет вес.
// Вызывается при старте приложения; ошибка здесь фатальна.
func (w WeightTable) Validate() error {
	for _, m := range requiredMetrics {
		if _, ok := w[m]; !ok {
			return fmt.Errorf("%w: %s", common.ErrMissingWeight, m)
		}
	}
	return nil
}

// Минимальные значения категорий (floor). Подключённый, но неактивный
// источник даёт ненулевую базу — в отличие от неподключённого,
// который не даёт ничего.
const (
	FloorSocial    = 10
	FloorCrypto    = 15
	FloorNFT       = 5
	FloorCommunity = 10
	FloorTelegram  = 5
)

// Потолки категорий. Применяются только при включённом флаге
// SCORING_APPLY_CAPS — см. Options.
const (
	CapSocial    = 50
	CapCrypto    = 40
	CapNFT       = 30
	CapCommunity = 20
	CapTelegram  = 15
)

// Options — настройки калькулятора.
type Options struct {
	// ApplyCategoryCaps включает потолки категорий. В исходной системе
	// жили две версии скоринга: старая с потолками и новая без —
	// выбор оставлен продукту, по умолчанию потолки выключены.
	ApplyCategoryCaps bool
}
