// Package sources — community.go описывает нормализованную активность
// пользователя в Telegram-сообществе: группы с правами и сообщения.
package sources

// Group — группа, в которой состоит пользователь, с его правами в ней.
type Group struct {
	Title          string
	CanSendPolls   bool // Право отправлять опросы
	CanPinMessages bool // Право закреплять сообщения
}

// Message — одно сообщение пользователя в сообществе.
type Message struct {
	Text        string   // Текст сообщения
	Caption     string   // Подпись к медиа (тоже сканируется на ключевые слова)
	Pinned      bool     // Закреплено ли сообщение
	ContentType string   // text / photo / video / poll / ...
	Hashtags    []string // Хэштеги из entities
	Mentions    []string // Упоминания из entities
	FromBotID   int64    // Если сообщение отправлено ботом — его ID, иначе 0
}

// RawCommunityData — нормализованная активность в сообществе.
type RawCommunityData struct {
	Groups   []Group
	Messages []Message
}

// PinnedCount возвращает число закреплённых сообщений пользователя.
func (c *RawCommunityData) PinnedCount() int64 {
	var n int64
	for _, m := range c.Messages {
		if m.Pinned {
			n++
		}
	}
	return n
}

// HashtagCount возвращает суммарное число хэштегов во всех сообщениях.
func (c *RawCommunityData) HashtagCount() int64 {
	var n int64
	for _, m := range c.Messages {
		n += int64(len(m.Hashtags))
	}
	return n
}

// MentionCount возвращает суммарное число упоминаний во всех сообщениях.
func (c *RawCommunityData) MentionCount() int64 {
	var n int64
	for _, m := range c.Messages {
		n += int64(len(m.Mentions))
	}
	return n
}

// PollPermission возвращает true, если хотя бы в одной группе
// у пользователя есть право отправлять опросы.
func (c *RawCommunityData) PollPermission() bool {
	for _, g := range c.Groups {
		if g.CanSendPolls {
			return true
		}
	}
	return false
}

// PinPermission возвращает true, если хотя бы в одной группе
// у пользователя есть право закреплять сообщения.
func (c *RawCommunityData) PinPermission() bool {
	for _, g := range c.Groups {
		if g.CanPinMessages {
			return true
		}
	}
	return false
}

// ScannableTexts возвращает все текстовые поля сообщений для поиска
// ключевых слов: текст и подписи к медиа.
func (c *RawCommunityData) ScannableTexts() []string {
	texts := make([]string, 0, len(c.Messages)*2)
	for _, m := range c.Messages {
		if m.Text != "" {
			texts = append(texts, m.Text)
		}
		if m.Caption != "" {
			texts = append(texts, m.Caption)
		}
	}
	return texts
}
