// Package sources — collector.go накапливает активность сообщества
// из входящих Telegram-апдейтов.
//
// Коллектор — явная структура с мьютексом, которая передаётся через
// зависимости (никаких глобальных карт на процесс). История сообщений
// на пользователя ограничена, чтобы память не росла бесконечно.
package sources

import (
	"context"
	"strconv"
	"sync"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessagesPerUser — сколько последних сообщений храним на пользователя.
const maxMessagesPerUser = 500

// CommunityCollector накапливает сообщения и права пользователей
// и реализует CommunityProvider для скоринга.
type CommunityCollector struct {
	mu     sync.RWMutex
	byUser map[string]*RawCommunityData
}

// NewCommunityCollector создаёт пустой коллектор.
func NewCommunityCollector() *CommunityCollector {
	return &CommunityCollector{byUser: make(map[string]*RawCommunityData)}
}

// Observe фиксирует одно входящее сообщение из группового чата.
// Вызывается ботом для КАЖДОГО сообщения в COMMUNITY_CHAT_ID.
func (c *CommunityCollector) Observe(msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	id := strconv.FormatInt(msg.From.ID, 10)

	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.byUser[id]
	if !ok {
		data = &RawCommunityData{}
		c.byUser[id] = data
	}

	data.Messages = append(data.Messages, convertMessage(msg))
	if len(data.Messages) > maxMessagesPerUser {
		data.Messages = data.Messages[len(data.Messages)-maxMessagesPerUser:]
	}
}

// ObserveMembership фиксирует членство пользователя в группе и его права.
// Вызывается, когда бот получает информацию о участнике чата.
func (c *CommunityCollector) ObserveMembership(userID int64, group Group) {
	id := strconv.FormatInt(userID, 10)

	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.byUser[id]
	if !ok {
		data = &RawCommunityData{}
		c.byUser[id] = data
	}

	// Обновляем существующую группу по названию, иначе добавляем
	for i := range data.Groups {
		if data.Groups[i].Title == group.Title {
			data.Groups[i] = group
			return
		}
	}
	data.Groups = append(data.Groups, group)
}

// FetchCommunity реализует CommunityProvider.
// Если про пользователя ничего не известно — источник отсутствует (nil, nil).
func (c *CommunityCollector) FetchCommunity(_ context.Context, userIdentifier string) (*RawCommunityData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.byUser[userIdentifier]
	if !ok {
		return nil, nil
	}

	// Возвращаем копию, чтобы скоринг не держал ссылку на живые срезы
	out := &RawCommunityData{
		Groups:   append([]Group(nil), data.Groups...),
		Messages: append([]Message(nil), data.Messages...),
	}
	return out, nil
}

// convertMessage приводит Telegram-сообщение к строгой форме Message.
func convertMessage(msg *tgbotapi.Message) Message {
	m := Message{
		Text:        msg.Text,
		Caption:     msg.Caption,
		ContentType: contentType(msg),
	}
	if msg.From != nil && msg.From.IsBot {
		m.FromBotID = msg.From.ID
	}
	if msg.PinnedMessage != nil {
		m.Pinned = true
	}

	m.Hashtags = extractEntities(msg.Text, msg.Entities, "hashtag")
	m.Hashtags = append(m.Hashtags, extractEntities(msg.Caption, msg.CaptionEntities, "hashtag")...)
	m.Mentions = extractEntities(msg.Text, msg.Entities, "mention")
	m.Mentions = append(m.Mentions, extractEntities(msg.Caption, msg.CaptionEntities, "mention")...)

	return m
}

// contentType определяет тип содержимого сообщения.
func contentType(msg *tgbotapi.Message) string {
	switch {
	case msg.Photo != nil:
		return "photo"
	case msg.Video != nil:
		return "video"
	case msg.Poll != nil:
		return "poll"
	case msg.Document != nil:
		return "document"
	case msg.Sticker != nil:
		return "sticker"
	default:
		return "text"
	}
}

// extractEntities вырезает из текста сущности указанного типа.
// Telegram считает offset/length в кодовых единицах UTF-16.
func extractEntities(text string, entities []tgbotapi.MessageEntity, entityType string) []string {
	if text == "" || len(entities) == 0 {
		return nil
	}
	var out []string
	units := utf16.Encode([]rune(text))
	for _, e := range entities {
		if e.Type != entityType {
			continue
		}
		if e.Offset < 0 || e.Offset+e.Length > len(units) {
			continue
		}
		out = append(out, string(utf16.Decode(units[e.Offset:e.Offset+e.Length])))
	}
	return out
}
