// Package badges — assigner.go выдаёт бейджи по сырым данным источников.
//
// Чистая функция без ввода-вывода. Для каждого бейджа из таблицы порогов
// считается его ведущая метрика (один счётчик или булево как 0/1) и
// определяется уровень. Бейджи независимы: пользователь может иметь
// любое их подмножество. Если источник отсутствует — его бейджи просто
// не считаются, без ошибки.
package badges

import (
	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

// Assigner выдаёт бейджи по неизменяемой таблице порогов.
type Assigner struct {
	thresholds ThresholdTable
	keywords   []string // отслеживаемые ключевые слова для Keyword Curator
}

// NewAssigner создаёт Assigner. Таблица порогов должна быть
// провалидирована ДО этого вызова (fail-fast при старте).
func NewAssigner(thresholds ThresholdTable, keywords []string) *Assigner {
	return &Assigner{thresholds: thresholds, keywords: keywords}
}

// Assign считает бейджи по всем подключённым источникам.
// Любой источник может быть nil. В результат попадают только
// выданные бейджи.
func (a *Assigner) Assign(social *sources.RawSocialData, wallet *sources.RawWalletData, community *sources.RawCommunityData) BadgeMap {
	awards := make(BadgeMap)

	if social != nil {
		a.award(awards, BadgeInfluenceInvestor, float64(social.Followers))
		a.award(awards, BadgeEngagementExpert, float64(social.Favourites))
		a.award(awards, BadgeContentCreator, float64(social.Statuses))
		a.award(awards, BadgeMediaMaven, float64(social.Media))
		a.award(awards, BadgeVerifiedVoice, boolValue(social.Verified))
	}

	if wallet != nil {
		a.award(awards, BadgeChainExplorer, float64(len(wallet.ActiveChains)))
		a.award(awards, BadgeTokenCollector, float64(len(wallet.Tokens)))
		a.award(awards, BadgeNFTConnoisseur, float64(len(wallet.NFTs)))
		a.award(awards, BadgeDeFiStrategist, float64(len(wallet.DeFiPositions)))
		a.award(awards, BadgeTransactionTitan, float64(wallet.TransactionCount))
	}

	if community != nil {
		a.award(awards, BadgePinnedMessageMaster, float64(community.PinnedCount()))
		a.award(awards, BadgeCommunityLeader, float64(len(community.Groups)))
		a.award(awards, BadgeHashtagHero, float64(community.HashtagCount()))

		keywords := sources.ScanKeywords(community.ScannableTexts(), a.keywords)
		a.award(awards, BadgeKeywordCurator, float64(keywords.Total))
	}

	return awards
}

// award добавляет бейдж в карту, если значение дотягивает хотя бы до Silver.
// Бейдж без порогов в таблице не выдаётся никогда — но Validate при старте
// гарантирует, что таблица полная.
func (a *Assigner) award(awards BadgeMap, name string, value float64) {
	th, ok := a.thresholds[name]
	if !ok {
		return
	}
	tier, ok := th.TierFor(value)
	if !ok {
		// Не дотянул до Silver — бейдж в карте отсутствует,
		// это осознанный фильтр, а не упущение
		return
	}
	awards[name] = Award{Tier: tier, Value: value}
}

// boolValue переводит булево в метрику 0/1.
func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
