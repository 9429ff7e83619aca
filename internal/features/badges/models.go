// Package badges реализует выдачу бейджей по порогам и выбор титула.
// models.go описывает уровни бейджей и результат выдачи.
package badges

// Tier — уровень бейджа.
type Tier string

const (
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Award — выданный бейдж: уровень и сырое значение метрики,
// по которому он выдан.
type Award struct {
	Tier  Tier
	Value float64
}

// Source — источник данных, по метрикам которого выдаётся бейдж.
type Source string

const (
	SourceSocial    Source = "social"
	SourceWallet    Source = "wallet"
	SourceCommunity Source = "community"
)

// badgeSources — привязка каждого бейджа к его источнику.
var badgeSources = map[string]Source{
	BadgeInfluenceInvestor: SourceSocial,
	BadgeEngagementExpert:  SourceSocial,
	BadgeContentCreator:    SourceSocial,
	BadgeMediaMaven:        SourceSocial,
	BadgeVerifiedVoice:     SourceSocial,

	BadgeChainExplorer:    SourceWallet,
	BadgeTokenCollector:   SourceWallet,
	BadgeNFTConnoisseur:   SourceWallet,
	BadgeDeFiStrategist:   SourceWallet,
	BadgeTransactionTitan: SourceWallet,

	BadgePinnedMessageMaster: SourceCommunity,
	BadgeCommunityLeader:     SourceCommunity,
	BadgeHashtagHero:         SourceCommunity,
	BadgeKeywordCurator:      SourceCommunity,
}

// SourceOf возвращает источник бейджа по имени.
// Для неизвестного имени ok=false — такой бейдж ни к какому
// источнику не привязан и при частичных обновлениях не трогается.
func SourceOf(name string) (Source, bool) {
	src, ok := badgeSources[name]
	return src, ok
}

// BadgeMap — отображение «имя бейджа → награда».
// Содержит ТОЛЬКО выданные бейджи: невыданный бейдж в карте отсутствует,
// а не лежит с пустым значением. Это осознанный фильтр, на него
// опирается выбор титула.
type BadgeMap map[string]Award

// Names возвращает имена выданных бейджей (порядок не гарантируется).
func (m BadgeMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// FromNames восстанавливает набор бейджей из сохранённого списка имён.
// Уровни при этом теряются, но для выбора титула важен только факт
// выдачи бейджа.
func FromNames(names []string) BadgeMap {
	m := make(BadgeMap, len(names))
	for _, name := range names {
		m[name] = Award{}
	}
	return m
}
