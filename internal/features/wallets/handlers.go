// Package wallets — handlers.go обрабатывает команды /connect и /wallets.
package wallets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
	"github.com/SL177Y-0/MVP-sub000/internal/features/scoring"
)

// Handler обрабатывает команды кошельков.
type Handler struct {
	service        *Service
	scoringService *scoring.Service
	bot            *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик кошельков.
func NewHandler(service *Service, scoringService *scoring.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, scoringService: scoringService, bot: bot}
}

// HandleConnect — команда /connect <адрес>. Привязывает кошелёк
// и сразу запускает пересчёт очков.
func (h *Handler) HandleConnect(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) != 1 {
		h.sendMessage(chatID, "Использование: /connect <адрес кошелька>")
		return
	}
	identifier := strconv.FormatInt(userID, 10)

	err := h.service.Link(ctx, identifier, args[0])
	switch {
	case errors.Is(err, common.ErrInvalidWalletAddress):
		h.sendMessage(chatID, "❌ Некорректный адрес: нужен hex-адрес вида 0x…")
		return
	case errors.Is(err, common.ErrWalletAlreadyLinked):
		h.sendMessage(chatID, "❌ Этот кошелёк уже привязан к другому пользователю")
		return
	case err != nil:
		log.WithError(err).Error("Ошибка привязки кошелька")
		h.sendMessage(chatID, "❌ Не удалось привязать кошелёк, попробуйте позже")
		return
	}

	// Пересчитываем очки с новым кошельком
	result, err := h.scoringService.ScoreUser(ctx, identifier)
	if result == nil {
		log.WithError(err).Error("Ошибка пересчёта после привязки")
		h.sendMessage(chatID, "✅ Кошелёк привязан, очки обновятся при следующем /score")
		return
	}

	text := fmt.Sprintf("✅ Кошелёк привязан!\n💰 Крипто: %.1f, 🖼 NFT: %.1f\n🏆 Общий счёт: %s",
		result.Breakdown.Crypto, result.Breakdown.NFT, common.FormatScore(result.Breakdown.Total))
	if err != nil {
		text += "\n⚠️ Очки посчитаны, но пока не сохранены"
	}
	h.sendMessage(chatID, text)
}

// HandleWallets — команда /wallets. Показывает привязанные кошельки
// и их вклад в счёт.
func (h *Handler) HandleWallets(ctx context.Context, chatID, userID int64) {
	identifier := strconv.FormatInt(userID, 10)

	record, err := h.scoringService.GetScore(ctx, identifier)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения кошельков")
		h.sendMessage(chatID, "❌ Ошибка чтения кошельков")
		return
	}

	if len(record.Wallets) == 0 {
		h.sendMessage(chatID, "💼 У тебя нет привязанных кошельков. Привяжи: /connect <адрес>")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💼 %d %s:\n\n",
		len(record.Wallets), common.PluralizeWallets(len(record.Wallets))))
	for i, w := range record.Wallets {
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n",
			i+1, shortenAddress(w.WalletAddress), common.FormatScore(w.Score)))
	}

	h.sendMessage(chatID, sb.String())
}

// shortenAddress сокращает адрес для вывода: 0x1234…abcd.
func shortenAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
