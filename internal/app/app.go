// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/bot"
	"github.com/SL177Y-0/MVP-sub000/internal/bot/filters"
	"github.com/SL177Y-0/MVP-sub000/internal/config"
	"github.com/SL177Y-0/MVP-sub000/internal/db/postgres"
	"github.com/SL177Y-0/MVP-sub000/internal/features/admin"
	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
	"github.com/SL177Y-0/MVP-sub000/internal/features/members"
	"github.com/SL177Y-0/MVP-sub000/internal/features/scoring"
	"github.com/SL177Y-0/MVP-sub000/internal/features/wallets"
	"github.com/SL177Y-0/MVP-sub000/internal/jobs"
	"github.com/SL177Y-0/MVP-sub000/internal/sources"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Collector *sources.CommunityCollector
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Таблицы весов и порогов ===
	// Невалидная конфигурация скоринга должна валить процесс на старте,
	// а не первого пользователя в рантайме.
	weights := scoring.DefaultWeights()
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("таблица весов: %w", err)
	}
	thresholds := badges.DefaultThresholds()
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("таблица порогов: %w", err)
	}

	// === 3. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 4. Источники данных ===
	collector := sources.NewCommunityCollector()
	var social sources.SocialProvider
	var wallet sources.WalletProvider
	if cfg.SourceDataDir != "" {
		fp := sources.NewFileProvider(cfg.SourceDataDir)
		social, wallet = fp, fp
	} else {
		log.Warn("SOURCE_DATA_DIR пуст — источники соцсети и кошельков отключены")
	}

	// === 5. Репозитории ===
	memberRepo := members.NewRepository(pool)
	scoreRepo := scoring.NewRepository(pool)
	walletRepo := wallets.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 6. Сервисы ===
	memberService := members.NewService(memberRepo)
	walletService := wallets.NewService(walletRepo)
	adminService := admin.NewService(adminRepo, cfg)

	calculator := scoring.NewCalculator(weights, scoring.Options{
		ApplyCategoryCaps: cfg.ScoringApplyCaps,
	}, cfg.Keywords)
	assigner := badges.NewAssigner(thresholds, cfg.Keywords)
	store := scoring.NewStore(scoreRepo, cfg.ScoringRetryAttempts, cfg.ScoringRetryDelay)
	scoringService := scoring.NewService(
		calculator, assigner, store,
		social, wallet, collector,
		walletService,
		cfg.SourceFetchTimeout,
	)

	rescorer := jobs.NewRescorer(memberService, scoringService)

	// === 7. Обработчики ===
	scoringHandler := scoring.NewHandler(scoringService, scoreRepo, botAPI)
	walletHandler := wallets.NewHandler(walletService, scoringService, botAPI)
	adminHandler := admin.NewHandler(adminService, rescorer, botAPI)

	// === 8. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.CommunityChatID, memberService, botAPI)

	// === 9. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService,
		collector,
		scoringHandler,
		walletHandler,
		adminHandler,
		chatFilter,
	)

	// === 10. Планировщик задач ===
	scheduler := jobs.NewScheduler(rescorer, cfg.RescoreCronSpec)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Collector: collector,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Members},
		{2, migration002Scores},
		{3, migration003Wallets},
		{4, migration004Admin},
	}

	for _, m := range migrations {
		if err := postgres.ApplyMigration(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Members = `
CREATE TABLE IF NOT EXISTS members (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    is_admin BOOLEAN DEFAULT FALSE,
    is_banned BOOLEAN DEFAULT FALSE,
    joined_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);
CREATE INDEX IF NOT EXISTS idx_members_username ON members(username);
`

var migration002Scores = `
CREATE TABLE IF NOT EXISTS scores (
    id BIGSERIAL PRIMARY KEY,
    user_identifier VARCHAR(255) UNIQUE NOT NULL,
    social_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    community_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    version BIGINT NOT NULL DEFAULT 1,
    badges TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_scores_total ON scores(total_score DESC);

CREATE TABLE IF NOT EXISTS score_wallets (
    id BIGSERIAL PRIMARY KEY,
    score_id BIGINT NOT NULL REFERENCES scores(id) ON DELETE CASCADE,
    wallet_address VARCHAR(255) NOT NULL,
    score DOUBLE PRECISION NOT NULL DEFAULT 0,
    UNIQUE(score_id, wallet_address)
);
`

var migration003Wallets = `
CREATE TABLE IF NOT EXISTS linked_wallets (
    id BIGSERIAL PRIMARY KEY,
    user_identifier VARCHAR(255) NOT NULL,
    address VARCHAR(255) UNIQUE NOT NULL,
    linked_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_linked_wallets_user ON linked_wallets(user_identifier);
`

var migration004Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);

CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_admin_login_attempts_user ON admin_login_attempts(user_id, attempt_time DESC);
`
