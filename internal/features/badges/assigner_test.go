package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

func newTestAssigner() *Assigner {
	return NewAssigner(DefaultThresholds(), []string{"cluster", "airdrop"})
}

// TestTierForBoundaries: границы уровней включительны, значение ниже
// Silver не выдаёт бейдж вовсе.
func TestTierForBoundaries(t *testing.T) {
	th := Thresholds{Silver: 10, Gold: 20, Platinum: 30}

	tests := []struct {
		value   float64
		want    Tier
		awarded bool
	}{
		{9, "", false},
		{10, TierSilver, true},
		{19, TierSilver, true},
		{20, TierGold, true},
		{29, TierGold, true},
		{30, TierPlatinum, true},
		{1000, TierPlatinum, true},
	}

	for _, tt := range tests {
		tier, ok := th.TierFor(tt.value)
		assert.Equal(t, tt.awarded, ok, "value=%v", tt.value)
		assert.Equal(t, tt.want, tier, "value=%v", tt.value)
	}
}

// TestAssignAwardedOnly: карта содержит только выданные бейджи.
func TestAssignAwardedOnly(t *testing.T) {
	a := newTestAssigner()

	social := &sources.RawSocialData{
		Followers: 15000, // Gold Influence Investor
		Statuses:  50,    // ниже Silver для Content Creator
	}

	awards := a.Assign(social, nil, nil)

	require.Contains(t, awards, BadgeInfluenceInvestor)
	assert.Equal(t, TierGold, awards[BadgeInfluenceInvestor].Tier)
	assert.Equal(t, float64(15000), awards[BadgeInfluenceInvestor].Value)

	assert.NotContains(t, awards, BadgeContentCreator)
	assert.NotContains(t, awards, BadgeChainExplorer, "кошелёк не подключён")
}

// TestAssignBooleanBadge: верификация — метрика 0/1 с порогом 1.
func TestAssignBooleanBadge(t *testing.T) {
	a := newTestAssigner()

	plain := a.Assign(&sources.RawSocialData{}, nil, nil)
	assert.NotContains(t, plain, BadgeVerifiedVoice)

	verified := a.Assign(&sources.RawSocialData{Verified: true}, nil, nil)
	require.Contains(t, verified, BadgeVerifiedVoice)
	assert.Equal(t, TierPlatinum, verified[BadgeVerifiedVoice].Tier)
}

// TestAssignWalletBadges: бейджи кошелька считаются по объединённой
// картине всех кошельков.
func TestAssignWalletBadges(t *testing.T) {
	a := newTestAssigner()

	merged := sources.MergeWallets([]sources.RawWalletData{
		{Address: "0xaaa", ActiveChains: []string{"eth", "polygon"}, TransactionCount: 700},
		{Address: "0xbbb", ActiveChains: []string{"eth", "base", "arbitrum"}, TransactionCount: 400},
	})
	require.NotNil(t, merged)

	awards := a.Assign(nil, merged, nil)

	require.Contains(t, awards, BadgeChainExplorer)
	// 4 уникальные сети: eth, polygon, base, arbitrum
	assert.Equal(t, TierSilver, awards[BadgeChainExplorer].Tier)

	require.Contains(t, awards, BadgeTransactionTitan)
	assert.Equal(t, TierGold, awards[BadgeTransactionTitan].Tier, "1100 транзакций суммарно")
}

// TestAssignAllAbsent: без источников — пустая карта, не ошибка.
func TestAssignAllAbsent(t *testing.T) {
	awards := newTestAssigner().Assign(nil, nil, nil)
	assert.Empty(t, awards)
}

// TestThresholdTableValidate: нарушение порядка порогов — ошибка конфигурации.
func TestThresholdTableValidate(t *testing.T) {
	table := DefaultThresholds()
	require.NoError(t, table.Validate())

	table[BadgeChainExplorer] = Thresholds{Silver: 10, Gold: 5, Platinum: 20}
	assert.Error(t, table.Validate())
}
