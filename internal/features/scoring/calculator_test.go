package scoring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

func newTestCalculator(opts Options) *Calculator {
	c := NewCalculator(DefaultWeights(), opts, []string{"cluster", "airdrop"})
	c.now = func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return c
}

// TestComputeFloors: при полностью отсутствующих источниках каждая
// категория получает свой пол, а не ноль.
func TestComputeFloors(t *testing.T) {
	c := newTestCalculator(Options{})

	b := c.Compute(nil, nil, nil)

	assert.Equal(t, float64(FloorSocial), b.Social)
	assert.Equal(t, float64(FloorCrypto), b.Crypto)
	assert.Equal(t, float64(FloorNFT), b.NFT)
	assert.Equal(t, float64(FloorCommunity), b.Community)
	assert.Equal(t, float64(FloorTelegram), b.Telegram)
	assert.Equal(t, b.Social+b.Crypto+b.NFT+b.Community+b.Telegram, b.Total)
	assert.NotZero(t, b.Total)
}

// TestComputeTotalIsSum: итог — всегда сумма категорий, без общего потолка.
func TestComputeTotalIsSum(t *testing.T) {
	c := newTestCalculator(Options{})

	social := &sources.RawSocialData{
		Followers: 500000,
		Verified:  true,
	}
	b := c.Compute(social, nil, nil)

	assert.Equal(t, b.Social+b.Crypto+b.NFT+b.Community+b.Telegram, b.Total)
	// 500000*0.001 + 20 = 520 — итог превышает любой потолок категории
	assert.Greater(t, b.Total, float64(CapSocial+CapCrypto+CapNFT+CapCommunity+CapTelegram))
}

// TestComputeCapsToggle: одинаковый вход даёт разный результат
// со включёнными и выключенными потолками.
func TestComputeCapsToggle(t *testing.T) {
	social := &sources.RawSocialData{Followers: 500000, Verified: true}

	uncapped := newTestCalculator(Options{}).Compute(social, nil, nil)
	capped := newTestCalculator(Options{ApplyCategoryCaps: true}).Compute(social, nil, nil)

	assert.Greater(t, uncapped.Social, float64(CapSocial))
	assert.Equal(t, float64(CapSocial), capped.Social)
	assert.Less(t, capped.Total, uncapped.Total)
}

// TestComputeAccountAge: возраст аккаунта в годах умножается на вес,
// неизвестная дата создания даёт нулевой вклад.
func TestComputeAccountAge(t *testing.T) {
	c := newTestCalculator(Options{})
	now := c.now()

	aged := &sources.RawSocialData{
		Followers: 20000,
		CreatedAt: now.Add(-2 * 365 * 24 * time.Hour),
	}
	fresh := &sources.RawSocialData{Followers: 20000}

	agedScore := c.Compute(aged, nil, nil).Social
	freshScore := c.Compute(fresh, nil, nil).Social

	// 730 дней / 365.25 ≈ 2 года, вес 2 — около 4 баллов разницы
	assert.InDelta(t, 4, agedScore-freshScore, 0.05)
}

// TestComputeVerifiedFlatBonus: плоский бонус добавляется один раз
// за булево условие, а не умножается на что-либо.
func TestComputeVerifiedFlatBonus(t *testing.T) {
	c := newTestCalculator(Options{})

	plain := &sources.RawSocialData{Followers: 10000}
	verified := &sources.RawSocialData{Followers: 10000, Verified: true}

	diff := c.Compute(verified, nil, nil).Social - c.Compute(plain, nil, nil).Social
	assert.InDelta(t, DefaultWeights()[MetricVerified], diff, 1e-9)
}

// TestComputeMultiWallet: каждый кошелёк оценивается независимо,
// вклад категорий crypto/nft — сумма по кошелькам.
func TestComputeMultiWallet(t *testing.T) {
	c := newTestCalculator(Options{})

	active := sources.RawWalletData{
		Address:       "0xaaa",
		NativeBalance: decimal.NewFromFloat(1.5),
		ActiveChains:  []string{"eth", "polygon"},
		NFTs: []sources.NFT{
			{Collection: "apes", TokenID: "1"},
			{Collection: "apes", TokenID: "2"},
		},
	}
	empty := sources.RawWalletData{Address: "0xbbb"}

	one := c.Compute(nil, []sources.RawWalletData{active}, nil)
	two := c.Compute(nil, []sources.RawWalletData{active, empty}, nil)

	// Пустой кошелёк добавляет свои полы, не обнуляет чужие очки
	assert.Equal(t, one.Crypto+FloorCrypto, two.Crypto)
	assert.Equal(t, one.NFT+FloorNFT, two.NFT)
}

// TestComputeWallet: очки одного кошелька равны crypto+nft с полами.
func TestComputeWallet(t *testing.T) {
	c := newTestCalculator(Options{})

	assert.Zero(t, c.ComputeWallet(nil))

	empty := &sources.RawWalletData{Address: "0xccc"}
	assert.Equal(t, float64(FloorCrypto+FloorNFT), c.ComputeWallet(empty))

	withNFT := &sources.RawWalletData{
		Address: "0xddd",
		NFTs:    []sources.NFT{{Collection: "punks", TokenID: "7"}},
	}
	w := DefaultWeights()
	want := float64(FloorCrypto) + 1*w[MetricNFTCount] + 1*w[MetricNFTCollectionCount]
	assert.InDelta(t, want, c.ComputeWallet(withNFT), 1e-9)
}

// TestComputeIdempotent: одинаковый вход даёт одинаковую разбивку.
func TestComputeIdempotent(t *testing.T) {
	c := newTestCalculator(Options{})
	social := &sources.RawSocialData{Followers: 123, Statuses: 456}

	first := c.Compute(social, nil, nil)
	second := c.Compute(social, nil, nil)
	assert.Equal(t, first, second)
}

// TestComputeKeywordContribution: вхождения ключевых слов в сообщениях
// сообщества добавляют очки telegram-категории.
func TestComputeKeywordContribution(t *testing.T) {
	c := newTestCalculator(Options{})

	community := &sources.RawCommunityData{
		Messages: []sources.Message{
			{Text: "join the cluster и ещё airdrop"},
			{Text: "clustering тут не считается"},
		},
	}
	silent := &sources.RawCommunityData{
		Messages: []sources.Message{
			{Text: "просто сообщение"},
			{Text: "ещё одно"},
		},
	}

	w := DefaultWeights()
	diff := c.Compute(nil, nil, community).Telegram - c.Compute(nil, nil, silent).Telegram
	assert.InDelta(t, 2*w[MetricKeywordMatchTotal], diff, 1e-9)
}

// TestWeightTableValidate: отсутствие веса любой метрики — ошибка конфигурации.
func TestWeightTableValidate(t *testing.T) {
	weights := DefaultWeights()
	require.NoError(t, weights.Validate())

	delete(weights, MetricNativeBalance)
	err := weights.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), MetricNativeBalance)
}
