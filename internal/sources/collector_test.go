package sources

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: -100},
		Text: text,
	}
}

// TestCollectorObserveAndFetch: накопленные сообщения отдаются по
// идентификатору пользователя; неизвестный пользователь — (nil, nil).
func TestCollectorObserveAndFetch(t *testing.T) {
	c := NewCommunityCollector()
	ctx := context.Background()

	c.Observe(groupMessage(42, "привет"))
	c.Observe(groupMessage(42, "ещё сообщение"))
	c.Observe(groupMessage(99, "чужое"))

	data, err := c.FetchCommunity(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Len(t, data.Messages, 2)

	unknown, err := c.FetchCommunity(ctx, "777")
	require.NoError(t, err)
	assert.Nil(t, unknown, "незнакомый пользователь = источник отсутствует")
}

// TestCollectorFetchReturnsCopy: изменение результата не влияет
// на внутреннее состояние коллектора.
func TestCollectorFetchReturnsCopy(t *testing.T) {
	c := NewCommunityCollector()
	ctx := context.Background()

	c.Observe(groupMessage(42, "оригинал"))

	first, err := c.FetchCommunity(ctx, "42")
	require.NoError(t, err)
	first.Messages[0].Text = "испорчено"
	first.Messages = nil

	second, err := c.FetchCommunity(ctx, "42")
	require.NoError(t, err)
	require.Len(t, second.Messages, 1)
	assert.Equal(t, "оригинал", second.Messages[0].Text)
}

// TestCollectorMessageLimit: история на пользователя ограничена,
// старые сообщения вытесняются новыми.
func TestCollectorMessageLimit(t *testing.T) {
	c := NewCommunityCollector()

	for i := 0; i < maxMessagesPerUser+10; i++ {
		c.Observe(groupMessage(42, "msg"))
	}

	data, err := c.FetchCommunity(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, data.Messages, maxMessagesPerUser)
}

// TestCollectorMembershipUpsert: группа обновляется по названию,
// а не дублируется.
func TestCollectorMembershipUpsert(t *testing.T) {
	c := NewCommunityCollector()
	ctx := context.Background()

	c.ObserveMembership(42, Group{Title: "community"})
	c.ObserveMembership(42, Group{Title: "community", CanPinMessages: true})

	data, err := c.FetchCommunity(ctx, "42")
	require.NoError(t, err)
	require.Len(t, data.Groups, 1)
	assert.True(t, data.Groups[0].CanPinMessages)
	assert.True(t, data.PinPermission())
}

// TestExtractEntitiesUTF16: offset/length сущностей считаются
// в кодовых единицах UTF-16, кириллица и эмодзи не ломают вырезку.
func TestExtractEntitiesUTF16(t *testing.T) {
	// "😀 привет #cluster" — эмодзи занимает 2 единицы UTF-16
	text := "😀 привет #cluster"
	entities := []tgbotapi.MessageEntity{
		{Type: "hashtag", Offset: 10, Length: 8},
	}

	tags := extractEntities(text, entities, "hashtag")
	require.Len(t, tags, 1)
	assert.Equal(t, "#cluster", tags[0])
}
