// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/SL177Y-0/MVP-sub000/internal/common"
)

// Rescorer пересчитывает очки всех участников. Реализуется в пакете jobs.
type Rescorer interface {
	Run(ctx context.Context) (int, error)
}

// Handler обрабатывает админ-команды.
type Handler struct {
	service  *Service
	rescorer Rescorer
	bot      *tgbotapi.BotAPI

	awaitingMu sync.Mutex
	awaiting   map[int64]bool // пользователи, от которых ждём пароль
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, rescorer Rescorer, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:  service,
		rescorer: rescorer,
		bot:      bot,
		awaiting: make(map[int64]bool),
	}
}

// HandleAdminMessage обрабатывает любое сообщение от администратора в DM.
// Возвращает true, если сообщение относится к админ-панели.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.setAwaitingPassword(userID, true)
		return true
	}

	switch text {
	case "Пересчитать очки":
		h.handleRescore(ctx, chatID)
		return true
	case "Выйти":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка завершения сессии")
		}
		msg := tgbotapi.NewMessage(chatID, "👋 Сессия завершена")
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		if _, err := h.bot.Send(msg); err != nil {
			log.WithError(err).Error("Ошибка отправки сообщения")
		}
		return true
	case "Админ", "Панель", "админ", "панель":
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// HandleLogin обрабатывает явную команду /login <пароль> в DM.
func (h *Handler) HandleLogin(ctx context.Context, chatID int64, userID int64, password string) {
	if !h.service.IsAdmin(userID) {
		return
	}
	if password == "" {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.setAwaitingPassword(userID, true)
		return
	}
	h.handlePasswordInput(ctx, chatID, userID, password)
}

// handlePasswordInput проверяет введённый пароль.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	h.setAwaitingPassword(userID, false)

	if err := h.service.VerifyPassword(ctx, userID, password); err != nil {
		switch {
		case errors.Is(err, common.ErrTooManyAttempts):
			h.sendMessage(chatID, "❌ Слишком много попыток. Подождите 1 час.")
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ Неверный пароль")
		default:
			h.sendMessage(chatID, fmt.Sprintf("❌ %s", err.Error()))
		}
		return
	}

	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

// handleRescore запускает полный пересчёт очков всех участников.
func (h *Handler) handleRescore(ctx context.Context, chatID int64) {
	h.sendMessage(chatID, "⏳ Пересчёт запущен...")

	count, err := h.rescorer.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка пересчёта очков")
		h.sendMessage(chatID, fmt.Sprintf("⚠️ Пересчёт завершён с ошибками. Обработано: %d", count))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Пересчёт завершён %s. Обработано участников: %d",
		common.FormatDateTime(common.GetMoscowTime()), count))
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Пересчитать очки"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выйти"),
		),
	)
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, "🛠 Админ-панель. Выберите действие:")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

func (h *Handler) isAwaitingPassword(userID int64) bool {
	h.awaitingMu.Lock()
	defer h.awaitingMu.Unlock()
	return h.awaiting[userID]
}

func (h *Handler) setAwaitingPassword(userID int64, v bool) {
	h.awaitingMu.Lock()
	defer h.awaitingMu.Unlock()
	if v {
		h.awaiting[userID] = true
	} else {
		delete(h.awaiting, userID)
	}
}

// sendMessage отправляет текстовое сообщение.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
