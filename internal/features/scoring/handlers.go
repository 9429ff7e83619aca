// Package scoring — handlers.go обрабатывает команды /score, /badges и /top.
package scoring

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
	"github.com/SL177Y-0/MVP-sub000/internal/features/badges"
)

// Handler обрабатывает команды скоринга.
type Handler struct {
	service *Service
	repo    *Repository // для топа — запись очков напрямую из БД
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик скоринга.
func NewHandler(service *Service, repo *Repository, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, repo: repo, bot: bot}
}

// HandleScore — команда /score. Полный проход скоринга: данные →
// очки → бейджи → титул → запись. Если сохранить не удалось —
// очки всё равно показываются, теряется только сохранность.
func (h *Handler) HandleScore(ctx context.Context, chatID, userID int64) {
	identifier := strconv.FormatInt(userID, 10)

	result, err := h.service.ScoreUser(ctx, identifier)
	if result == nil {
		log.WithError(err).Error("Ошибка скоринга")
		h.sendMessage(chatID, "❌ Не удалось посчитать очки, попробуйте позже")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 Твой influence-счёт: %s\n\n", common.FormatScore(result.Breakdown.Total)))
	sb.WriteString(fmt.Sprintf("🐦 Соцсеть: %.1f\n", result.Breakdown.Social))
	sb.WriteString(fmt.Sprintf("💰 Крипто: %.1f\n", result.Breakdown.Crypto))
	sb.WriteString(fmt.Sprintf("🖼 NFT: %.1f\n", result.Breakdown.NFT))
	sb.WriteString(fmt.Sprintf("👥 Сообщество: %.1f\n", result.Breakdown.Community))
	sb.WriteString(fmt.Sprintf("✈️ Telegram: %.1f\n", result.Breakdown.Telegram))
	sb.WriteString(fmt.Sprintf("\n🎖 Титул: %s", result.Title))

	if err != nil {
		// Посчитали, но не сохранили — показываем с пометкой
		sb.WriteString("\n\n⚠️ Очки посчитаны, но пока не сохранены")
	}

	h.sendMessage(chatID, sb.String())
}

// HandleBadges — команда /badges. Показывает сохранённые бейджи и титул.
func (h *Handler) HandleBadges(ctx context.Context, chatID, userID int64) {
	identifier := strconv.FormatInt(userID, 10)

	record, err := h.service.GetScore(ctx, identifier)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения бейджей")
		h.sendMessage(chatID, "❌ Ошибка чтения бейджей")
		return
	}

	if len(record.Badges) == 0 {
		h.sendMessage(chatID, "🎖 У тебя пока нет бейджей. Набери /score, чтобы обновить")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎖 Твои бейджи (%d):\n\n", len(record.Badges)))
	for _, name := range record.Badges {
		sb.WriteString("• " + name + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nТитул: %s", badges.ResolveTitle(badges.FromNames(record.Badges))))
	if !record.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("\n🕒 Обновлено: %s", common.FormatDateTime(record.UpdatedAt)))
	}

	h.sendMessage(chatID, sb.String())
}

// HandleTop — команда /top. Десятка лучших по общему счёту.
func (h *Handler) HandleTop(ctx context.Context, chatID int64) {
	records, err := h.repo.Top(ctx, 10)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения топа")
		h.sendMessage(chatID, "❌ Ошибка чтения топа")
		return
	}

	if len(records) == 0 {
		h.sendMessage(chatID, "📋 Топ пока пуст — никто не набирал /score")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Топ по influence-счёту:\n\n")
	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n",
			i+1, rec.UserIdentifier, common.FormatScore(rec.TotalScore)))
	}

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
