package gateway

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/poll"

	"github.com/norio-nomura/discordkit/pkg/client"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/options"
	"github.com/norio-nomura/discordkit/pkg/rest/resttest"
)

func newTestClient() *client.Client {
	return client.New(resttest.New(), client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestToMessage(t *testing.T) {
	guildID := snowflake.ID(9)
	m, err := toMessage(disgodiscord.Message{
		ID:        1,
		ChannelID: 2,
		Content:   "hello",
		Author:    disgodiscord.User{ID: 3, Username: "kuro"},
	}, &guildID)
	assert.NilError(t, err)
	assert.Equal(t, m.ID, snowflake.ID(1))
	assert.Equal(t, m.GuildID, guildID)
	assert.Equal(t, m.Content, "hello")
	assert.Equal(t, m.Author.Username, "kuro")
	assert.Equal(t, m.JumpURL(), "https://discord.com/channels/9/2/1")

	dm, err := toMessage(disgodiscord.Message{ID: 4, ChannelID: 5}, nil)
	assert.NilError(t, err)
	assert.Equal(t, dm.GuildID, snowflake.ID(0))
}

func TestConvertUser(t *testing.T) {
	u, err := convert[discord.User](disgodiscord.OAuth2User{User: disgodiscord.User{ID: 7, Username: "bot", Bot: true}})
	assert.NilError(t, err)
	assert.Equal(t, u.ID, snowflake.ID(7))
	assert.Assert(t, u.Bot)
}

func TestMessageEvents(t *testing.T) {
	c := newTestClient()
	h := newMessageEventsHandler(c)

	h.storeLatestEventForMessageID(messageEvent{id: 1, message: &discord.Message{ID: 1, Content: "first"}})
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if m, ok := c.MessageByID(1); ok && m.Content == "first" {
			return poll.Success()
		}
		return poll.Continue("message 1 not cached yet")
	}, poll.WithTimeout(time.Second), poll.WithDelay(time.Millisecond))

	h.storeLatestEventForMessageID(messageEvent{id: 1})
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if _, ok := c.MessageByID(1); ok {
			return poll.Continue("message 1 still cached")
		}
		return poll.Success()
	}, poll.WithTimeout(time.Second), poll.WithDelay(time.Millisecond))
}

func TestStoreToSyncMap(t *testing.T) {
	var m sync.Map
	_, stored := storeToSyncMap(&m, 1, "a")
	assert.Assert(t, stored)
	old, stored := storeToSyncMap(&m, 1, "b")
	assert.Assert(t, !stored)
	assert.Equal(t, old, "a")

	v, err := loadFromSyncMap[int, string](&m, 1)
	assert.NilError(t, err)
	assert.Equal(t, v, "b")

	_, err = loadFromSyncMap[int, string](&m, 2)
	assert.ErrorContains(t, err, "not found")
	_, err = loadFromSyncMap[int, int](&m, 1)
	assert.ErrorContains(t, err, "not of expected type")
}

func TestGuildsToLoad(t *testing.T) {
	h := readyHandler{options: &options.Options{}, client: newTestClient()}
	ids := []snowflake.ID{1, 2, 3}
	assert.DeepEqual(t, h.guildsToLoad(ids), ids)

	h.options.DiscordGuildIDs = []string{"3", "1"}
	assert.DeepEqual(t, h.guildsToLoad(ids), []snowflake.ID{1, 3})
	assert.DeepEqual(t, ids, []snowflake.ID{1, 2, 3})

	h.options.DiscordGuildIDs = []string{"x"}
	assert.Assert(t, h.guildsToLoad(ids) == nil)
}
