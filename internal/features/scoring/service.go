// Package scoring — service.go содержит оркестратор скоринга:
// собрать данные → посчитать очки и бейджи → выбрать титул → сохранить.
//
// Оркестратор получает данные от провайдеров с таймаутом на источник.
// Сбой или таймаут провайдера означает «источник отсутствует»: его
// категории не попадают в обновление записи, скоринг продолжается.
package scoring

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

// AddressRegistry отдаёт адреса кошельков, привязанных к пользователю.
// Реализуется фичей wallets.
type AddressRegistry interface {
	Addresses(ctx context.Context, userIdentifier string) ([]string, error)
}

// Result — результат полного прохода скоринга.
type Result struct {
	Breakdown Breakdown       // Разбивка очков по категориям
	Badges    badges.BadgeMap // Выданные бейджи
	Title     string          // Титул по набору бейджей
	Record    *ScoreRecord    // Запись очков (сохранённая или рассчитанная)
	Persisted bool            // false = посчитали, но сохранить не удалось
}

// Service — оркестратор скоринга.
type Service struct {
	calc     *Calculator
	assigner *badges.Assigner
	store    *Store

	social    sources.SocialProvider
	wallet    sources.WalletProvider
	community sources.CommunityProvider
	registry  AddressRegistry

	// Таймаут на запрос к одному источнику
	fetchTimeout time.Duration
}

// NewService создаёт оркестратор. Любой провайдер может быть nil —
// тогда его источник всегда считается отсутствующим.
func NewService(
	calc *Calculator,
	assigner *badges.Assigner,
	store *Store,
	social sources.SocialProvider,
	wallet sources.WalletProvider,
	community sources.CommunityProvider,
	registry AddressRegistry,
	fetchTimeout time.Duration,
) *Service {
	return &Service{
		calc:         calc,
		assigner:     assigner,
		store:        store,
		social:       social,
		wallet:       wallet,
		community:    community,
		registry:     registry,
		fetchTimeout: fetchTimeout,
	}
}

// ScoreUser выполняет полный проход: данные → очки → бейджи → титул →
// запись. Возвращает результат ВСЕГДА, когда очки посчитаны: если
// сохранение не удалось после всех попыток, Result.Persisted == false
// и возвращается та же ошибка — вызывающий показывает очки пользователю
// и теряет только гарантию сохранности.
func (s *Service) ScoreUser(ctx context.Context, userIdentifier string) (*Result, error) {
	social := s.fetchSocial(ctx, userIdentifier)
	wallets := s.fetchWallets(ctx, userIdentifier)
	community := s.fetchCommunity(ctx, userIdentifier)

	// Чистые функции: очки, бейджи, титул. Бейджи кошельков считаются
	// по объединённой картине всех привязанных кошельков.
	breakdown := s.calc.Compute(social, wallets, community)
	awards := s.assigner.Assign(social, sources.MergeWallets(wallets), community)
	title := badges.ResolveTitle(awards)

	updates := s.buildUpdates(social, wallets, community, breakdown, awards)

	record, err := s.store.Persist(ctx, userIdentifier, updates)
	result := &Result{
		Breakdown: breakdown,
		Badges:    awards,
		Title:     title,
		Record:    record,
		Persisted: err == nil,
	}
	if err != nil {
		// Деградируем мягко: очки посчитаны и возвращаются,
		// потеряна только сохранность
		return result, err
	}
	return result, nil
}

// GetScore возвращает сохранённую запись очков.
// Отсутствие истории — не ошибка: у нового пользователя ноль очков.
func (s *Service) GetScore(ctx context.Context, userIdentifier string) (*ScoreRecord, error) {
	return s.store.Load(ctx, userIdentifier)
}

// buildUpdates собирает частичное обновление: в запись попадают только
// категории подключённых источников, остальные поля не трогаются.
func (s *Service) buildUpdates(
	social *sources.RawSocialData,
	wallets []sources.RawWalletData,
	community *sources.RawCommunityData,
	breakdown Breakdown,
	awards badges.BadgeMap,
) CategoryUpdates {
	var updates CategoryUpdates

	if social != nil {
		v := breakdown.Social
		updates.Social = &v
	}
	if community != nil {
		// В записи хранится одна колонка сообщества: community + telegram
		v := breakdown.Community + breakdown.Telegram
		updates.Community = &v
	}
	for i := range wallets {
		updates.Wallets = append(updates.Wallets, WalletScore{
			WalletAddress: wallets[i].Address,
			Score:         s.calc.ComputeWallet(&wallets[i]),
		})
	}

	// Бейджи замещаются только по опрошенным источникам: сбой
	// источника не должен стирать заработанные по нему бейджи,
	// как не стирает и его очки.
	badgeUpd := &BadgeUpdate{Names: awards.Names()}
	sort.Strings(badgeUpd.Names)
	if social != nil {
		badgeUpd.Refreshed = append(badgeUpd.Refreshed, badges.SourceSocial)
	}
	if len(wallets) > 0 {
		badgeUpd.Refreshed = append(badgeUpd.Refreshed, badges.SourceWallet)
	}
	if community != nil {
		badgeUpd.Refreshed = append(badgeUpd.Refreshed, badges.SourceCommunity)
	}
	updates.Badges = badgeUpd

	return updates
}

// fetchSocial запрашивает метрики соцсети. Сбой = источник отсутствует.
func (s *Service) fetchSocial(ctx context.Context, userIdentifier string) *sources.RawSocialData {
	if s.social == nil {
		return nil
	}
	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	data, err := s.social.FetchSocial(fctx, userIdentifier)
	if err != nil {
		log.WithError(err).WithField("user", userIdentifier).
			Warn("Источник соцсети недоступен, категория пропущена")
		return nil
	}
	return data
}

// fetchWallets запрашивает активность каждого привязанного кошелька.
// Недоступный кошелёк пропускается, остальные оцениваются.
func (s *Service) fetchWallets(ctx context.Context, userIdentifier string) []sources.RawWalletData {
	if s.wallet == nil || s.registry == nil {
		return nil
	}
	addresses, err := s.registry.Addresses(ctx, userIdentifier)
	if err != nil {
		log.WithError(err).WithField("user", userIdentifier).
			Warn("Не удалось получить адреса кошельков")
		return nil
	}

	var out []sources.RawWalletData
	for _, addr := range addresses {
		fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		data, err := s.wallet.FetchWallet(fctx, addr)
		cancel()
		if err != nil || data == nil {
			log.WithError(err).WithField("wallet", addr).
				Warn("Кошелёк недоступен, пропущен")
			continue
		}
		out = append(out, *data)
	}
	return out
}

// fetchCommunity запрашивает активность в сообществе.
func (s *Service) fetchCommunity(ctx context.Context, userIdentifier string) *sources.RawCommunityData {
	if s.community == nil {
		return nil
	}
	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	data, err := s.community.FetchCommunity(fctx, userIdentifier)
	if err != nil {
		log.WithError(err).WithField("user", userIdentifier).
			Warn("Источник сообщества недоступен, категория пропущена")
		return nil
	}
	return data
}
