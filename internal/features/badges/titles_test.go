package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolveTitleFirstMatch: побеждает первое подходящее правило,
// даже если дальше по таблице есть другие подходящие.
func TestResolveTitleFirstMatch(t *testing.T) {
	// Набор покрывает и CRYPTO OVERLORD (1-е правило), и DEGEN TRADER (3-е)
	awards := FromNames([]string{
		BadgeChainExplorer, BadgeTokenCollector,
		BadgeDeFiStrategist, BadgeTransactionTitan,
	})
	assert.Equal(t, "CRYPTO OVERLORD", ResolveTitle(awards))

	// Без DeFi-бейджа первое правило не срабатывает — выигрывает DEGEN TRADER
	delete(awards, BadgeDeFiStrategist)
	assert.Equal(t, "DEGEN TRADER", ResolveTitle(awards))
}

// TestResolveTitleDefault: пустой или непокрытый набор даёт титул по умолчанию.
func TestResolveTitleDefault(t *testing.T) {
	assert.Equal(t, DefaultTitle, ResolveTitle(BadgeMap{}))
	assert.Equal(t, DefaultTitle, ResolveTitle(FromNames([]string{BadgeMediaMaven})))
}

// TestResolveTitleIgnoresTier: для титула важен факт бейджа, не уровень.
func TestResolveTitleIgnoresTier(t *testing.T) {
	silver := BadgeMap{
		BadgeHashtagHero: {Tier: TierSilver, Value: 10},
	}
	platinum := BadgeMap{
		BadgeHashtagHero: {Tier: TierPlatinum, Value: 500},
	}
	assert.Equal(t, ResolveTitle(silver), ResolveTitle(platinum))
	assert.Equal(t, "CHATTERBOX", ResolveTitle(silver))
}

// TestResolveTitleSingleBadgeRules: одиночные правила в хвосте таблицы
// срабатывают, только когда не подошло ничего выше.
func TestResolveTitleSingleBadgeRules(t *testing.T) {
	awards := FromNames([]string{BadgeKeywordCurator})
	assert.Equal(t, "KEYWORD PROPHET", ResolveTitle(awards))

	awards[BadgeHashtagHero] = Award{}
	assert.Equal(t, "CHATTERBOX", ResolveTitle(awards), "CHATTERBOX стоит раньше")
}
