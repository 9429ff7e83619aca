// Package scoring — calculator.go считает очки по категориям.
//
// Калькулятор — чистая функция без ввода-вывода: получает уже
// нормализованные данные источников и возвращает разбивку очков.
// Отсутствие источника (nil) — не ошибка: категория пропускается целиком.
package scoring

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

// Breakdown — разбивка очков по категориям плюс итог.
type Breakdown struct {
	Social    float64
	Crypto    float64
	NFT       float64
	Community float64
	Telegram  float64
	Total     float64
}

// Calculator считает очки по неизменяемой таблице весов.
type Calculator struct {
	weights  WeightTable
	opts     Options
	keywords []string // отслеживаемые ключевые слова сообщества

	// now подменяется в тестах для детерминированного возраста аккаунта
	now func() time.Time
}

// NewCalculator создаёт калькулятор. Таблица весов должна быть
// провалидирована ДО этого вызова (fail-fast при старте).
func NewCalculator(weights WeightTable, opts Options, keywords []string) *Calculator {
	return &Calculator{
		weights:  weights,
		opts:     opts,
		keywords: keywords,
		now:      time.Now,
	}
}

// Compute считает очки всех категорий. Любой из источников может быть
// nil — тогда его категории считаются от нулевых значений и получают
// пол. Пропуск неподключённой категории при сохранении — забота
// оркестратора (частичное обновление), не калькулятора.
//
// Алгоритм по каждой категории:
//  1. Взвешенная линейная сумма: score += value * weight[metric]
//  2. Плоские бонусы добавляются один раз за булево условие
//  3. Паника внутри категории гасится, категория падает в 0
//  4. Ровно 0 заменяется полом категории
//  5. При включённых потолках — обрезка сверху
//
// Кошельков может быть несколько: каждый оценивается независимо тем же
// правилом взвешенной суммы (с полами и потолками на кошелёк), вклад
// категорий crypto/nft — сумма по кошелькам.
func (c *Calculator) Compute(social *sources.RawSocialData, wallets []sources.RawWalletData, community *sources.RawCommunityData) Breakdown {
	var b Breakdown

	if social == nil {
		social = &sources.RawSocialData{}
	}
	if community == nil {
		community = &sources.RawCommunityData{}
	}
	if len(wallets) == 0 {
		wallets = []sources.RawWalletData{{}}
	}

	rawSocial := c.safeCategory("social", func() float64 { return c.socialScore(social) })
	b.Social = c.finishCategory(rawSocial, FloorSocial, CapSocial)

	for i := range wallets {
		w := &wallets[i]
		rawCrypto := c.safeCategory("crypto", func() float64 { return c.cryptoScore(w) })
		rawNFT := c.safeCategory("nft", func() float64 { return c.nftScore(w) })
		b.Crypto += c.finishCategory(rawCrypto, FloorCrypto, CapCrypto)
		b.NFT += c.finishCategory(rawNFT, FloorNFT, CapNFT)
	}

	rawCommunity := c.safeCategory("community", func() float64 { return c.communityScore(community) })
	rawTelegram := c.safeCategory("telegram", func() float64 { return c.telegramScore(community) })
	b.Community = c.finishCategory(rawCommunity, FloorCommunity, CapCommunity)
	b.Telegram = c.finishCategory(rawTelegram, FloorTelegram, CapTelegram)

	// Итог — сумма категорий. Общего потолка нет.
	b.Total = b.Social + b.Crypto + b.NFT + b.Community + b.Telegram
	return b
}

// ComputeWallet считает очки одного кошелька: crypto + nft с полами
// (и потолками, если включены). Используется при привязке кошелька:
// каждый кошелёк пользователя оценивается независимо, итог по кошелькам —
// сумма их очков.
func (c *Calculator) ComputeWallet(wallet *sources.RawWalletData) float64 {
	if wallet == nil {
		return 0
	}
	rawCrypto := c.safeCategory("crypto", func() float64 { return c.cryptoScore(wallet) })
	rawNFT := c.safeCategory("nft", func() float64 { return c.nftScore(wallet) })
	return c.finishCategory(rawCrypto, FloorCrypto, CapCrypto) +
		c.finishCategory(rawNFT, FloorNFT, CapNFT)
}

// safeCategory гасит панику внутри расчёта категории: сломанная категория
// падает в 0 (потом получит пол), остальные считаются дальше.
func (c *Calculator) safeCategory(name string, fn func() float64) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"category": name,
				"panic":    r,
			}).Error("Сбой расчёта категории, очки категории обнулены")
			score = 0
		}
	}()
	return fn()
}

// finishCategory применяет пол и (опционально) потолок категории.
func (c *Calculator) finishCategory(raw, floor, ceiling float64) float64 {
	score := raw
	if score == 0 {
		score = floor
	}
	if c.opts.ApplyCategoryCaps && score > ceiling {
		score = ceiling
	}
	return score
}

// socialScore — взвешенная сумма метрик соцсети.
func (c *Calculator) socialScore(s *sources.RawSocialData) float64 {
	w := c.weights
	score := float64(s.Followers)*w[MetricFollowers] +
		float64(s.Following)*w[MetricFollowing] +
		float64(s.Statuses)*w[MetricStatuses] +
		float64(s.Favourites)*w[MetricFavourites] +
		float64(s.Listed)*w[MetricListed] +
		float64(s.Media)*w[MetricMedia] +
		float64(s.CreatorSubscriptions)*w[MetricCreatorSubscriptions] +
		float64(s.Retweets)*w[MetricRetweets] +
		float64(s.Quotes)*w[MetricQuotes] +
		float64(s.Replies)*w[MetricReplies]

	// Возраст аккаунта в годах; неизвестная дата создания даёт возраст 0
	score += s.AccountAgeYears(c.now()) * w[MetricAccountAgeYears]

	// Плоские бонусы — один раз за условие, не за единицу
	if s.Verified {
		score += w[MetricVerified]
	}
	if s.SuperFollowEligible {
		score += w[MetricSuperFollowEligible]
	}
	if s.HasPinnedPost {
		score += w[MetricPinnedPost]
	}
	return score
}

// cryptoScore — взвешенная сумма крипто-метрик одного кошелька.
func (c *Calculator) cryptoScore(wallet *sources.RawWalletData) float64 {
	w := c.weights
	native, _ := wallet.NativeBalance.Float64()

	score := native*w[MetricNativeBalance] +
		float64(len(wallet.Tokens))*w[MetricTokenCount] +
		float64(len(wallet.ActiveChains))*w[MetricActiveChainCount] +
		float64(len(wallet.DeFiPositions))*w[MetricDeFiPositionCount] +
		float64(wallet.TransactionCount)*w[MetricTransactionCount] +
		float64(wallet.UniqueTokenInteractions)*w[MetricUniqueTokenInteractions]

	if wallet.HasResolvedDomain {
		score += w[MetricResolvedDomain]
	}
	return score
}

// nftScore — взвешенная сумма NFT-метрик одного кошелька.
func (c *Calculator) nftScore(wallet *sources.RawWalletData) float64 {
	w := c.weights
	return float64(len(wallet.NFTs))*w[MetricNFTCount] +
		float64(wallet.UniqueCollections())*w[MetricNFTCollectionCount]
}

// communityScore — взвешенная сумма по группам и правам.
func (c *Calculator) communityScore(community *sources.RawCommunityData) float64 {
	w := c.weights
	score := float64(len(community.Groups)) * w[MetricGroupCount]

	if community.PollPermission() {
		score += w[MetricPollPermission]
	}
	if community.PinPermission() {
		score += w[MetricPinPermission]
	}
	return score
}

// telegramScore — взвешенная сумма по сообщениям: количество, закрепы,
// хэштеги, упоминания и вхождения ключевых слов (только целые слова).
func (c *Calculator) telegramScore(community *sources.RawCommunityData) float64 {
	w := c.weights
	score := float64(len(community.Messages))*w[MetricMessageCount] +
		float64(community.PinnedCount())*w[MetricPinnedMessageCount] +
		float64(community.HashtagCount())*w[MetricHashtagCount] +
		float64(community.MentionCount())*w[MetricMentionCount]

	keywords := sources.ScanKeywords(community.ScannableTexts(), c.keywords)
	score += float64(keywords.Total) * w[MetricKeywordMatchTotal]

	return score
}
