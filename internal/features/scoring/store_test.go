package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
)

// fakeBackend — in-memory Backend с программируемыми сбоями.
type fakeBackend struct {
	records map[string]*ScoreRecord

	failLoads int   // столько первых Load вернут ошибку
	failSaves int   // столько первых Save вернут ошибку
	saveErr   error // какую ошибку возвращать из Save

	loadCalls int
	saveCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		records: make(map[string]*ScoreRecord),
		saveErr: errors.New("хранилище недоступно"),
	}
}

func (f *fakeBackend) Load(_ context.Context, userIdentifier string) (*ScoreRecord, error) {
	f.loadCalls++
	if f.failLoads > 0 {
		f.failLoads--
		return nil, errors.New("хранилище недоступно")
	}
	record, ok := f.records[userIdentifier]
	if !ok {
		return nil, common.ErrRecordNotFound
	}
	clone := *record
	clone.Wallets = append([]WalletScore(nil), record.Wallets...)
	clone.Badges = append([]string(nil), record.Badges...)
	return &clone, nil
}

func (f *fakeBackend) Save(_ context.Context, record *ScoreRecord) error {
	f.saveCalls++
	if f.failSaves > 0 {
		f.failSaves--
		return f.saveErr
	}
	record.Version++
	clone := *record
	clone.Wallets = append([]WalletScore(nil), record.Wallets...)
	clone.Badges = append([]string(nil), record.Badges...)
	f.records[record.UserIdentifier] = &clone
	return nil
}

func newTestStore(backend Backend) *Store {
	s := NewStore(backend, 3, time.Second)
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s
}

func floatPtr(v float64) *float64 { return &v }

// TestPersistCreatesRecord: первого скоринга достаточно для появления записи.
func TestPersistCreatesRecord(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)

	record, err := store.Persist(context.Background(), "42", CategoryUpdates{
		Social:    floatPtr(30),
		Community: floatPtr(15),
	})

	require.NoError(t, err)
	assert.Equal(t, float64(30), record.SocialScore)
	assert.Equal(t, float64(15), record.CommunityScore)
	assert.Equal(t, float64(45), record.TotalScore)
}

// TestPersistPartialUpdate: категории, отсутствующие в обновлении,
// сохраняют прежние значения, а итог пересчитывается.
func TestPersistPartialUpdate(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	_, err := store.Persist(ctx, "42", CategoryUpdates{
		Social:    floatPtr(30),
		Community: floatPtr(15),
		Wallets:   []WalletScore{{WalletAddress: "0xaaa", Score: 20}},
	})
	require.NoError(t, err)

	record, err := store.Persist(ctx, "42", CategoryUpdates{
		Social: floatPtr(50),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(50), record.SocialScore)
	assert.Equal(t, float64(15), record.CommunityScore, "community не трогали")
	require.Len(t, record.Wallets, 1)
	assert.Equal(t, float64(20), record.Wallets[0].Score, "кошелёк не трогали")
	assert.Equal(t, float64(85), record.TotalScore)
}

// TestPersistMultiWallet: новый адрес добавляется, существующий
// обновляется на месте, дубликаты не плодятся.
func TestPersistMultiWallet(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	_, err := store.Persist(ctx, "42", CategoryUpdates{
		Wallets: []WalletScore{{WalletAddress: "0xaaa", Score: 20}},
	})
	require.NoError(t, err)

	record, err := store.Persist(ctx, "42", CategoryUpdates{
		Wallets: []WalletScore{
			{WalletAddress: "0xaaa", Score: 25}, // повторная привязка
			{WalletAddress: "0xbbb", Score: 40}, // новый кошелёк
		},
	})
	require.NoError(t, err)

	require.Len(t, record.Wallets, 2)
	assert.Equal(t, float64(25+40), record.TotalScore)
}

// TestPersistBadgeMerge: обновление замещает бейджи только опрошенных
// источников; бейджи остальных источников остаются в записи.
func TestPersistBadgeMerge(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	_, err := store.Persist(ctx, "42", CategoryUpdates{
		Badges: &BadgeUpdate{
			Names: []string{
				badges.BadgeInfluenceInvestor,
				badges.BadgeChainExplorer,
			},
			Refreshed: []badges.Source{badges.SourceSocial, badges.SourceWallet},
		},
	})
	require.NoError(t, err)

	// Пересчитана только соцсеть: её бейджи замещаются (Influence
	// Investor потерян, Verified Voice получен), кошелёк не трогали.
	record, err := store.Persist(ctx, "42", CategoryUpdates{
		Badges: &BadgeUpdate{
			Names:     []string{badges.BadgeVerifiedVoice},
			Refreshed: []badges.Source{badges.SourceSocial},
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, record.Badges, badges.BadgeInfluenceInvestor)
	assert.Contains(t, record.Badges, badges.BadgeVerifiedVoice)
	assert.Contains(t, record.Badges, badges.BadgeChainExplorer,
		"бейджи неопрошенного источника сохраняются")
}

// TestPersistRetrySucceeds: два сбоя записи, третья попытка проходит.
func TestPersistRetrySucceeds(t *testing.T) {
	backend := newFakeBackend()
	backend.failSaves = 2
	store := newTestStore(backend)

	record, err := store.Persist(context.Background(), "42", CategoryUpdates{
		Social: floatPtr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, backend.saveCalls)
	assert.Equal(t, float64(30), record.TotalScore)
}

// TestPersistExhaustedReturnsRecord: после исчерпания попыток возвращается
// рассчитанная запись ВМЕСТЕ с ошибкой — «посчитали, но не сохранили»
// отличимо от «не смогли посчитать».
func TestPersistExhaustedReturnsRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.failSaves = 3
	store := newTestStore(backend)

	record, err := store.Persist(context.Background(), "42", CategoryUpdates{
		Social: floatPtr(30),
	})

	require.Error(t, err)
	require.NotNil(t, record, "очки должны вернуться даже без сохранения")
	assert.Equal(t, float64(30), record.TotalScore)
	assert.Equal(t, 3, backend.saveCalls, "ровно attempts попыток")
	assert.Empty(t, backend.records, "в хранилище ничего не попало")
}

// TestPersistVersionConflictRetries: конфликт версий заставляет
// перечитать запись — обновление ложится поверх конкурентной записи,
// а не затирает её (lost update исключён).
func TestPersistVersionConflictRetries(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	_, err := store.Persist(ctx, "42", CategoryUpdates{Social: floatPtr(30)})
	require.NoError(t, err)

	// Первая Save вернёт конфликт, и перед повтором «конкурент» успевает
	// записать свои очки сообщества.
	backend.failSaves = 1
	backend.saveErr = common.ErrVersionConflict
	concurrent := false
	store.sleep = func(context.Context, time.Duration) error {
		if !concurrent {
			concurrent = true
			rec := backend.records["42"]
			rec.CommunityScore = 99
			rec.RecomputeTotal()
			rec.Version++
		}
		return nil
	}

	record, err := store.Persist(ctx, "42", CategoryUpdates{Social: floatPtr(50)})
	require.NoError(t, err)

	assert.Equal(t, float64(50), record.SocialScore)
	assert.Equal(t, float64(99), record.CommunityScore, "конкурентная запись не потеряна")
	assert.Equal(t, float64(149), record.TotalScore)
}

// TestPersistLoadFailureRetries: сбой чтения тоже повторяется.
func TestPersistLoadFailureRetries(t *testing.T) {
	backend := newFakeBackend()
	backend.failLoads = 1
	store := newTestStore(backend)

	record, err := store.Persist(context.Background(), "42", CategoryUpdates{
		Social: floatPtr(30),
	})

	require.NoError(t, err)
	assert.Equal(t, float64(30), record.SocialScore)
}

// TestLoadAbsent: отсутствие истории — не ошибка, возвращается нулевая запись.
func TestLoadAbsent(t *testing.T) {
	store := newTestStore(newFakeBackend())

	record, err := store.Load(context.Background(), "нет-такого")
	require.NoError(t, err)
	assert.Equal(t, "нет-такого", record.UserIdentifier)
	assert.Zero(t, record.TotalScore)
}

// TestPersistTotalEqualsSum: после каждого Persist итог равен сумме компонентов.
func TestPersistTotalEqualsSum(t *testing.T) {
	backend := newFakeBackend()
	store := newTestStore(backend)
	ctx := context.Background()

	updates := []CategoryUpdates{
		{Social: floatPtr(30)},
		{Community: floatPtr(15)},
		{Wallets: []WalletScore{{WalletAddress: "0xaaa", Score: 20}}},
		{Social: floatPtr(10), Wallets: []WalletScore{{WalletAddress: "0xbbb", Score: 5}}},
	}

	for _, u := range updates {
		record, err := store.Persist(ctx, "42", u)
		require.NoError(t, err)

		sum := record.SocialScore + record.CommunityScore
		for _, w := range record.Wallets {
			sum += w.Score
		}
		assert.Equal(t, sum, record.TotalScore)
	}
}
