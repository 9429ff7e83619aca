// Package badges — thresholds.go содержит таблицу порогов бейджей.
//
// Таблица неизменяемая, создаётся при старте и валидируется fail-fast:
// для каждого бейджа silver ≤ gold ≤ platinum.
package badges

import (
	"fmt"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Имена бейджей соцсети.
const (
	BadgeInfluenceInvestor = "Influence Investor" // По числу подписчиков
	BadgeEngagementExpert  = "Engagement Expert"  // По числу лайков
	BadgeContentCreator    = "Content Creator"    // По числу постов
	BadgeMediaMaven        = "Media Maven"        // По числу медиа-постов
	BadgeVerifiedVoice     = "Verified Voice"     // По галочке верификации (0/1)
)

// Имена бейджей кошелька.
const (
	BadgeChainExplorer    = "Chain Explorer"    // По числу активных сетей
	BadgeTokenCollector   = "Token Collector"   // По числу токенов
	BadgeNFTConnoisseur   = "NFT Connoisseur"   // По числу NFT
	BadgeDeFiStrategist   = "DeFi Strategist"   // По числу DeFi-позиций
	BadgeTransactionTitan = "Transaction Titan" // По числу транзакций
)

// Имена бейджей сообщества.
const (
	BadgePinnedMessageMaster = "Pinned Message Master" // По числу закреплённых сообщений
	BadgeCommunityLeader     = "Community Leader"      // По числу групп
	BadgeHashtagHero         = "Hashtag Hero"          // По числу хэштегов
	BadgeKeywordCurator      = "Keyword Curator"       // По вхождениям ключевых слов
)

// Thresholds — тройка возрастающих порогов одного бейджа.
type Thresholds struct {
	Silver   float64
	Gold     float64
	Platinum float64
}

// ThresholdTable — неизменяемая таблица «имя бейджа → пороги».
type ThresholdTable map[string]Thresholds

// DefaultThresholds возвращает таблицу порогов по умолчанию.
// Булевы метрики (верификация) считаются как 0/1, порог 1 на всех
// уровнях — бейдж либо есть (Platinum), либо нет.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		// --- Соцсеть ---
		BadgeInfluenceInvestor: {Silver: 1000, Gold: 10000, Platinum: 100000},
		BadgeEngagementExpert:  {Silver: 500, Gold: 5000, Platinum: 50000},
		BadgeContentCreator:    {Silver: 100, Gold: 1000, Platinum: 10000},
		BadgeMediaMaven:        {Silver: 50, Gold: 500, Platinum: 5000},
		BadgeVerifiedVoice:     {Silver: 1, Gold: 1, Platinum: 1},

		// --- Кошелёк ---
		BadgeChainExplorer:    {Silver: 2, Gold: 5, Platinum: 10},
		BadgeTokenCollector:   {Silver: 5, Gold: 20, Platinum: 50},
		BadgeNFTConnoisseur:   {Silver: 1, Gold: 10, Platinum: 50},
		BadgeDeFiStrategist:   {Silver: 1, Gold: 5, Platinum: 15},
		BadgeTransactionTitan: {Silver: 100, Gold: 1000, Platinum: 10000},

		// --- Сообщество ---
		BadgePinnedMessageMaster: {Silver: 1, Gold: 5, Platinum: 20},
		BadgeCommunityLeader:     {Silver: 3, Gold: 10, Platinum: 25},
		BadgeHashtagHero:         {Silver: 10, Gold: 50, Platinum: 200},
		BadgeKeywordCurator:      {Silver: 5, Gold: 25, Platinum: 100},
	}
}

// Validate проверяет возрастание порогов каждого бейджа.
// Вызывается при старте приложения; ошибка здесь фатальна.
func (t ThresholdTable) Validate() error {
	for name, th := range t {
		if th.Silver > th.Gold || th.Gold > th.Platinum {
			return fmt.Errorf("%w: %s (%v/%v/%v)",
				common.ErrBadThresholds, name, th.Silver, th.Gold, th.Platinum)
		}
	}
	return nil
}

// TierFor возвращает уровень для значения v по порогам (границы включительно):
// v ≥ platinum → Platinum, иначе v ≥ gold → Gold, иначе v ≥ silver → Silver,
// иначе бейдж не выдаётся (ok=false).
func (th Thresholds) TierFor(v float64) (Tier, bool) {
	switch {
	case v >= th.Platinum:
		return TierPlatinum, true
	case v >= th.Gold:
		return TierGold, true
	case v >= th.Silver:
		return TierSilver, true
	default:
		return "", false
	}
}
