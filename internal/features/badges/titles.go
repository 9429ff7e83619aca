// Package badges — titles.go выбирает титул пользователя по набору бейджей.
//
// Правила УПОРЯДОЧЕНЫ: побеждает первое правило, все требуемые бейджи
// которого присутствуют в наборе (уровень не важен). Наборы правил
// пересекаются, поэтому перестановка таблицы меняет наблюдаемое
// поведение — это first-match-wins, а не best-match. Любая перестановка
// требует обновления тестов.
package badges

// DefaultTitle возвращается, когда ни одно правило не подошло.
const DefaultTitle = "ALL ROUNDOOR"

// TitleRule — одно правило: титул и список обязательных бейджей.
type TitleRule struct {
	Title    string
	Required []string
}

// defaultTitleRules — упорядоченная таблица правил титулов.
// Более специфичные (длинные) правила стоят раньше общих.
var defaultTitleRules = []TitleRule{
	{
		Title:    "CRYPTO OVERLORD",
		Required: []string{BadgeChainExplorer, BadgeTokenCollector, BadgeDeFiStrategist, BadgeTransactionTitan},
	},
	{
		Title:    "SOCIAL TITAN",
		Required: []string{BadgeInfluenceInvestor, BadgeEngagementExpert, BadgeContentCreator},
	},
	{
		Title:    "DEGEN TRADER",
		Required: []string{BadgeTokenCollector, BadgeTransactionTitan},
	},
	{
		Title:    "NFT WHALE",
		Required: []string{BadgeNFTConnoisseur, BadgeChainExplorer},
	},
	{
		Title:    "COMMUNITY PILLAR",
		Required: []string{BadgeCommunityLeader, BadgePinnedMessageMaster},
	},
	{
		Title:    "VERIFIED INFLUENCER",
		Required: []string{BadgeVerifiedVoice, BadgeInfluenceInvestor},
	},
	{
		Title:    "CONTENT MACHINE",
		Required: []string{BadgeContentCreator, BadgeMediaMaven},
	},
	{
		Title:    "CHATTERBOX",
		Required: []string{BadgeHashtagHero},
	},
	{
		Title:    "KEYWORD PROPHET",
		Required: []string{BadgeKeywordCurator},
	},
}

// ResolveTitle возвращает титул для набора бейджей: первое правило,
// чьи требования полностью содержатся в наборе. Если ни одно не подошло —
// DefaultTitle.
func ResolveTitle(awards BadgeMap) string {
	return resolveTitle(defaultTitleRules, awards)
}

func resolveTitle(rules []TitleRule, awards BadgeMap) string {
	for _, rule := range rules {
		if hasAll(awards, rule.Required) {
			return rule.Title
		}
	}
	return DefaultTitle
}

// hasAll проверяет, что каждый требуемый бейдж присутствует в наборе.
// Уровень бейджа не учитывается — достаточно самого факта выдачи.
func hasAll(awards BadgeMap, required []string) bool {
	for _, name := range required {
		if _, ok := awards[name]; !ok {
			return false
		}
	}
	return true
}
