package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/poll"

	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
	"github.com/norio-nomura/discordkit/pkg/rest/resttest"
)

const (
	guildID  snowflake.ID = 1
	selfID   snowflake.ID = 200
	ownerID  snowflake.ID = 100
	textID   snowflake.ID = 50
	voiceID  snowflake.ID = 51
	otherGID snowflake.ID = 9
)

// Role 2 manages the guild, role 3 moderates messages, role 4 sits above both.
func testGuild() discord.Guild {
	return discord.Guild{
		ID:      guildID,
		Name:    "test",
		OwnerID: ownerID,
		Roles: []discord.Role{
			{ID: guildID, Name: "@everyone", Permissions: discord.PermissionsOf(discord.PermissionViewChannel, discord.PermissionMessageSend, discord.PermissionMessageHistory)},
			{ID: 2, Name: "manager", Position: 1, Permissions: discord.PermissionsOf(discord.PermissionManageChannel, discord.PermissionManageRoles, discord.PermissionManageWebhooks, discord.PermissionManageEvents)},
			{ID: 3, Name: "moderator", Position: 2, Permissions: discord.PermissionsOf(discord.PermissionMessageEmbedLinks, discord.PermissionMessageManage, discord.PermissionMessageAddReaction)},
			{ID: 4, Name: "top", Position: 5},
		},
		Emojis: []discord.Emoji{{ID: 70, Name: "dance", Animated: true}},
	}
}

func newTestClient(selfRoles ...snowflake.ID) (*Client, *resttest.Requester) {
	requester := resttest.New()
	c := New(requester, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithApplicationID(900))
	c.SetSelfUser(discord.User{ID: selfID, Username: "bot", Bot: true})
	c.CacheGuild(testGuild())
	c.CacheMember(discord.Member{GuildID: guildID, User: discord.User{ID: selfID}, RoleIDs: selfRoles})
	c.CacheChannel(discord.ChannelFromPayload(&discord.ChannelPayload{ID: textID, Type: discord.ChannelTypeText, GuildID: guildID, Name: "general"}))
	c.CacheChannel(discord.ChannelFromPayload(&discord.ChannelPayload{ID: voiceID, Type: discord.ChannelTypeVoice, GuildID: guildID, Name: "voice"}))
	return c, requester
}

func TestLookups(t *testing.T) {
	c, _ := newTestClient(2)

	g, ok := c.GuildByID(guildID)
	assert.Assert(t, ok)
	assert.Equal(t, g.Name, "test")
	_, ok = c.GuildByID(otherGID)
	assert.Assert(t, !ok)

	r, ok := c.RoleByID(3)
	assert.Assert(t, ok)
	assert.Equal(t, r.Name, "moderator")
	assert.Equal(t, r.GuildID, guildID)

	e, ok := c.EmojiByID(70)
	assert.Assert(t, ok)
	assert.Equal(t, e.Formatted(), "<a:dance:70>")

	ch, ok := c.ChannelByID(textID)
	assert.Assert(t, ok)
	_, isText := ch.(discord.TextChannel)
	assert.Assert(t, isText)

	self, ok := c.SelfMember(guildID)
	assert.Assert(t, ok)
	assert.DeepEqual(t, self.RoleIDs, []snowflake.ID{2})

	c.CacheMessage(discord.Message{ID: 500, ChannelID: textID, GuildID: guildID})
	_, ok = c.MessageByID(500)
	assert.Assert(t, ok)

	c.UncacheGuild(guildID)
	_, ok = c.GuildByID(guildID)
	assert.Assert(t, !ok)
	_, ok = c.ChannelByID(textID)
	assert.Assert(t, !ok)
	_, ok = c.SelfMember(guildID)
	assert.Assert(t, !ok)
	_, ok = c.MessageByID(500)
	assert.Assert(t, !ok)
}

func TestCacheRole(t *testing.T) {
	c, _ := newTestClient()
	c.CacheRole(discord.Role{ID: 3, GuildID: guildID, Name: "renamed", Position: 2})
	c.CacheRole(discord.Role{ID: 8, GuildID: guildID, Name: "new", Position: 3})
	g, _ := c.GuildByID(guildID)
	assert.Equal(t, len(g.Roles), 5)
	r, _ := g.RoleByID(3)
	assert.Equal(t, r.Name, "renamed")

	c.UncacheRole(guildID, 8)
	_, ok := c.RoleByID(8)
	assert.Assert(t, !ok)
}

func TestMessageCacheSize(t *testing.T) {
	c := New(resttest.New(), WithMessageCacheSize(2))
	for id := range 3 {
		c.CacheMessage(discord.Message{ID: snowflake.ID(id + 1)})
	}
	_, ok := c.MessageByID(1)
	assert.Assert(t, !ok)
	_, ok = c.MessageByID(3)
	assert.Assert(t, ok)

	c.UncacheMessage(3)
	_, ok = c.MessageByID(3)
	assert.Assert(t, !ok)
}

func TestApplicationID(t *testing.T) {
	c := New(resttest.New())
	_, ok := c.ApplicationID()
	assert.Assert(t, !ok)
	_, err := c.RetrieveCommands(0).Complete(context.Background())
	assert.ErrorIs(t, err, ErrApplicationUnknown)

	c.SetSelfUser(discord.User{ID: 42})
	id, ok := c.ApplicationID()
	assert.Assert(t, ok)
	assert.Equal(t, id, snowflake.ID(42))
}

func TestLoadGuild(t *testing.T) {
	requester := resttest.New().
		Respond(rest.GetSelfUser, discord.User{ID: selfID, Username: "bot"}).
		Respond(rest.GetGuild, testGuild()).
		Respond(rest.GetGuildChannels, []discord.ChannelPayload{
			{ID: textID, Type: discord.ChannelTypeText, GuildID: guildID, Name: "general"},
			{ID: 60, Type: discord.ChannelTypeCategory, GuildID: guildID, Name: "info"},
		}).
		Respond(rest.GetGuildMember, discord.Member{User: discord.User{ID: selfID}, RoleIDs: []snowflake.ID{2}})
	c := New(requester)

	g, err := c.LoadGuild(guildID).Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, g.ID, guildID)

	self, ok := c.SelfUser()
	assert.Assert(t, ok)
	assert.Equal(t, self.Username, "bot")

	r, ok := c.RoleByID(2)
	assert.Assert(t, ok)
	assert.Equal(t, r.GuildID, guildID)

	ch, ok := c.ChannelByID(60)
	assert.Assert(t, ok)
	_, isCategory := ch.(discord.Category)
	assert.Assert(t, isCategory)

	m, ok := c.SelfMember(guildID)
	assert.Assert(t, ok)
	assert.Equal(t, m.GuildID, guildID)

	assert.Equal(t, requester.RequestsTo(rest.GetGuildMember)[0].Route.URL(), "/guilds/1/members/200")
}

func TestLoadGuildFailure(t *testing.T) {
	requester := resttest.New().
		Respond(rest.GetGuild, testGuild()).
		Fail(rest.GetGuildMember, discord.ErrorResponseUnknownMember).
		Respond(rest.GetGuildChannels, []discord.ChannelPayload{})
	c := New(requester)
	c.SetSelfUser(discord.User{ID: selfID})

	_, err := c.LoadGuild(guildID).Complete(context.Background())
	assert.Assert(t, discord.IsErrorResponse(err, discord.ErrorResponseUnknownMember))

	// the channel fetch is left unawaited when the member fetch fails
	before := runtime.NumGoroutine()
	for range 50 {
		_, err = c.LoadGuild(guildID).Complete(context.Background())
		assert.Assert(t, err != nil)
	}
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if n := runtime.NumGoroutine(); n > before {
			return poll.Continue("%d goroutines still running, started with %d", n, before)
		}
		return poll.Success()
	}, poll.WithTimeout(2*time.Second), poll.WithDelay(10*time.Millisecond))
}

func TestRetrieve(t *testing.T) {
	c, requester := newTestClient()
	requester.
		Respond(rest.GetUser, discord.User{ID: 7, Username: "kuro"}).
		Respond(rest.GetChannel, discord.ChannelPayload{ID: 80, Type: discord.ChannelTypeGuildPublicThread, GuildID: guildID, ParentID: textID}).
		Respond(rest.GetRoles, []discord.Role{{ID: guildID}, {ID: 2}}).
		Respond(rest.GetScheduledEvents, []discord.ScheduledEvent{{ID: 5, GuildID: guildID, Name: "party"}}).
		Respond(rest.GetStageInstance, discord.StageInstance{ID: 6, ChannelID: voiceID, Topic: "talk"}).
		Respond(rest.GetSkus, []discord.Sku{{ID: 11, Flags: discord.SkuFlagAvailable}}).
		Respond(rest.GetGuildCommands, []discord.Command{{ID: 12, Name: "ping", GuildID: guildID}})
	ctx := context.Background()

	u, err := c.RetrieveUser(7).Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, u.Username, "kuro")

	ch, err := c.RetrieveChannel(80).Complete(ctx)
	assert.NilError(t, err)
	thread, ok := ch.(discord.ThreadChannel)
	assert.Assert(t, ok)
	assert.Equal(t, thread.ParentID(), textID)
	_, ok = c.ChannelByID(80)
	assert.Assert(t, ok)

	roles, err := c.RetrieveRoles(guildID).Complete(ctx)
	assert.NilError(t, err)
	assert.Assert(t, roles[0].IsPublicRole())

	events, err := c.RetrieveScheduledEvents(guildID).Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, events[0].Name, "party")
	assert.Equal(t, requester.RequestsTo(rest.GetScheduledEvents)[0].Route.URL(), "/guilds/1/scheduled-events?with_user_count=true")

	stage, err := c.RetrieveStageInstance(voiceID).Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, stage.Topic, "talk")

	skus, err := c.RetrieveSkus().Complete(ctx)
	assert.NilError(t, err)
	assert.Assert(t, skus[0].IsAvailable())
	assert.Equal(t, requester.RequestsTo(rest.GetSkus)[0].Route.URL(), "/applications/900/skus")

	commands, err := c.RetrieveCommands(guildID).Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, commands[0].AsMention(), "</ping:12>")
}

func TestRetrieveWebhooksPermission(t *testing.T) {
	c, requester := newTestClient()
	requester.Respond(rest.GetChannelWebhooks, []discord.Webhook{{ID: 3, Name: "hook"}})

	_, err := c.RetrieveWebhooks(textID).Complete(context.Background())
	var permErr *discord.InsufficientPermissionError
	assert.Assert(t, errors.As(err, &permErr))
	assert.Equal(t, permErr.Permission, discord.PermissionManageWebhooks)
	assert.Equal(t, permErr.ChannelID, textID)
	assert.Equal(t, requester.Count(), 0)

	c.CacheMember(discord.Member{GuildID: guildID, User: discord.User{ID: selfID}, RoleIDs: []snowflake.ID{2}})
	hooks, err := c.RetrieveWebhooks(textID).Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, hooks[0].Name, "hook")
}

func TestGuildChannels(t *testing.T) {
	c, _ := newTestClient()
	c.CacheChannel(discord.ChannelFromPayload(&discord.ChannelPayload{ID: 52, Type: discord.ChannelTypeText, GuildID: guildID, Position: 0}))
	c.CacheChannel(discord.ChannelFromPayload(&discord.ChannelPayload{ID: 53, Type: discord.ChannelTypeText, GuildID: otherGID}))
	c.CacheChannel(discord.ChannelFromPayload(&discord.ChannelPayload{ID: 54, Type: discord.ChannelTypePrivate}))
	c.CacheGuild(discord.Guild{ID: otherGID})

	var ids []snowflake.ID
	for _, ch := range c.GuildChannels(guildID) {
		ids = append(ids, ch.ID())
	}
	assert.Equal(t, len(ids), 3)
	assert.Assert(t, !slices.Contains(ids, 53))
	assert.Assert(t, !slices.Contains(ids, 54))

	guilds := c.Guilds()
	assert.Equal(t, len(guilds), 2)
	assert.Equal(t, guilds[0].ID, guildID)
}
