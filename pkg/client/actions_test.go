package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

func missingPermission(t *testing.T, err error) discord.Permission {
	t.Helper()
	var permErr *discord.InsufficientPermissionError
	assert.Assert(t, errors.As(err, &permErr), "got %v", err)
	return permErr.Permission
}

func body(t *testing.T, rq rest.Request) string {
	t.Helper()
	raw, err := json.Marshal(rq.Body)
	assert.NilError(t, err)
	return string(raw)
}

func TestCreateChannel(t *testing.T) {
	ctx := context.Background()

	t.Run("missing permission", func(t *testing.T) {
		c, requester := newTestClient()
		_, err := c.CreateChannel(guildID, discord.ChannelTypeText, "news").Complete(ctx)
		assert.Equal(t, missingPermission(t, err), discord.PermissionManageChannel)
		assert.Equal(t, requester.Count(), 0)
	})

	t.Run("created", func(t *testing.T) {
		c, requester := newTestClient(2)
		requester.Respond(rest.CreateGuildChannel, discord.ChannelPayload{ID: 90, Type: discord.ChannelTypeText, GuildID: guildID, Name: "news"})
		ch, err := c.CreateChannel(guildID, discord.ChannelTypeText, "news").
			SetTopic("daily").
			SetSlowmode(30).
			Reason("setup").
			Complete(ctx)
		assert.NilError(t, err)
		assert.Equal(t, ch.ID(), snowflake.ID(90))
		_, ok := c.ChannelByID(90)
		assert.Assert(t, ok)

		rq := requester.RequestsTo(rest.CreateGuildChannel)[0]
		assert.Equal(t, rq.Reason, "setup")
		assert.Equal(t, body(t, rq), `{"name":"news","type":0,"topic":"daily","rate_limit_per_user":30}`)
	})

	t.Run("invalid settings are collected", func(t *testing.T) {
		c, requester := newTestClient(2)
		_, err := c.CreateChannel(guildID, discord.ChannelTypeGuildPublicThread, "").
			SetBitrate(64000).
			SetSlowmode(-1).
			Complete(ctx)
		assert.ErrorIs(t, err, checks.ErrIllegalArgument)
		assert.ErrorContains(t, err, "Cannot create a channel of type GUILD_PUBLIC_THREAD")
		assert.ErrorContains(t, err, "Name")
		assert.ErrorContains(t, err, "Slowmode")
		assert.Equal(t, requester.Count(), 0)
	})

	t.Run("bitrate bounded by boost tier", func(t *testing.T) {
		c, _ := newTestClient(2)
		a := c.CreateChannel(guildID, discord.ChannelTypeVoice, "voice").SetBitrate(128000)
		assert.ErrorIs(t, a.Action().Err(), checks.ErrIllegalArgument)
		a = c.CreateChannel(guildID, discord.ChannelTypeVoice, "voice").SetBitrate(96000).SetUserLimit(10)
		assert.NilError(t, a.Action().Err())
		assert.Equal(t, a.Data().Bitrate, 96000)
	})

	t.Run("overrides need manage roles", func(t *testing.T) {
		c, _ := newTestClient(2)
		c.CacheGuild(func() discord.Guild {
			g := testGuild()
			g.Roles[1].Permissions = g.Roles[1].Permissions.Remove(discord.PermissionManageRoles)
			return g
		}())
		_, err := c.CreateChannel(guildID, discord.ChannelTypeText, "secret").
			AddPermissionOverride(guildID, discord.OverrideTypeRole, 0, discord.PermissionsOf(discord.PermissionViewChannel)).
			Complete(ctx)
		assert.Equal(t, missingPermission(t, err), discord.PermissionManageRoles)
	})

	t.Run("parent must be a category", func(t *testing.T) {
		c, _ := newTestClient(2)
		err := c.CreateChannel(guildID, discord.ChannelTypeText, "x").SetParent(voiceID).Action().Err()
		assert.ErrorContains(t, err, "is not a category")
	})
}

func TestCreateCopy(t *testing.T) {
	c, requester := newTestClient(2)
	requester.Respond(rest.CreateGuildChannel, discord.ChannelPayload{ID: 91, Type: discord.ChannelTypeText, GuildID: otherGID})
	src := discord.ChannelFromPayload(&discord.ChannelPayload{
		ID: textID, Type: discord.ChannelTypeText, GuildID: guildID, Name: "general", Topic: "hi", ParentID: 60,
		PermissionOverwrites: []discord.PermissionOverride{{ID: guildID, Type: discord.OverrideTypeRole, Deny: discord.PermissionsOf(discord.PermissionMessageSend)}},
	}).(discord.TextChannel)

	same := c.CreateCopy(guildID, src).Data()
	assert.Equal(t, same.ParentID, snowflake.ID(60))
	assert.Equal(t, len(same.PermissionOverwrites), 1)

	other := c.CreateCopy(otherGID, src)
	assert.Equal(t, other.Data().ParentID, snowflake.ID(0))
	assert.Assert(t, cmp.Len(other.Data().PermissionOverwrites, 0))
	assert.Equal(t, other.Data().Topic, "hi")

	// nothing is cached for the other guild, so no permission check applies
	_, err := other.Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, requester.RequestsTo(rest.CreateGuildChannel)[0].Route.URL(), "/guilds/9/channels")
}

func TestDeleteChannel(t *testing.T) {
	c, requester := newTestClient()
	requester.Respond(rest.DeleteChannel, nil)
	_, err := c.DeleteChannel(textID).Complete(context.Background())
	assert.Equal(t, missingPermission(t, err), discord.PermissionManageChannel)

	c.CacheMember(discord.Member{GuildID: guildID, User: discord.User{ID: selfID}, RoleIDs: []snowflake.ID{2}})
	_, err = c.DeleteChannel(textID).Complete(context.Background())
	assert.NilError(t, err)
	_, ok := c.ChannelByID(textID)
	assert.Assert(t, !ok)
}

func TestCreateRole(t *testing.T) {
	ctx := context.Background()
	c, requester := newTestClient(2)
	requester.Respond(rest.CreateRole, discord.Role{ID: 30, Name: "helper", Position: 1})

	_, err := c.CreateRole(guildID).SetName("admin").SetPermissions(discord.PermissionsOf(discord.PermissionAdministrator)).Complete(ctx)
	assert.Equal(t, missingPermission(t, err), discord.PermissionAdministrator)

	_, err = c.CreateRole(guildID).SetColors(discord.GradientColors(0xFF0000, 0x00FF00)).Complete(ctx)
	assert.ErrorContains(t, err, string(discord.GuildFeatureEnhancedColors))

	r, err := c.CreateRole(guildID).
		SetName("helper").
		SetPermissions(discord.PermissionsOf(discord.PermissionManageChannel)).
		SetColors(discord.SolidColors(0x00FF00)).
		SetMentionable(true).
		Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, r.GuildID, guildID)
	cached, ok := c.RoleByID(30)
	assert.Assert(t, ok)
	assert.Equal(t, cached.Name, "helper")

	rq := requester.RequestsTo(rest.CreateRole)[0]
	assert.Equal(t, body(t, rq), `{"name":"helper","permissions":"16","colors":{"primary_color":65280,"secondary_color":null,"tertiary_color":null},"mentionable":true}`)
}

func TestModifyRole(t *testing.T) {
	ctx := context.Background()
	c, requester := newTestClient(2)
	requester.Respond(rest.UpdateRole, discord.Role{ID: 3, Name: "mod", Position: 2})
	top, _ := c.RoleByID(4)
	mod, _ := c.RoleByID(3)

	_, err := c.ModifyRole(top).SetName("x").Complete(ctx)
	var hierarchy *discord.HierarchyError
	assert.Assert(t, errors.As(err, &hierarchy))

	// moderator is above the bot's own highest role
	_, err = c.ModifyRole(mod).SetName("mod").Complete(ctx)
	assert.Assert(t, errors.As(err, &hierarchy))

	c.CacheMember(discord.Member{GuildID: guildID, User: discord.User{ID: selfID}, RoleIDs: []snowflake.ID{2, 4}})
	r, err := c.ModifyRole(mod).SetIcon(nil).Reason("cleanup").Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, r.Name, "mod")
	rq := requester.RequestsTo(rest.UpdateRole)[0]
	assert.Equal(t, rq.Route.URL(), "/guilds/1/roles/3")
	assert.Equal(t, body(t, rq), `{"icon":null,"unicode_emoji":null}`)

	g, _ := c.GuildByID(guildID)
	cached, _ := g.RoleByID(3)
	assert.Equal(t, cached.Name, "mod")
}

func TestDeleteRole(t *testing.T) {
	c, requester := newTestClient(2, 4)
	requester.Respond(rest.DeleteRole, nil)
	public, _ := c.RoleByID(guildID)
	_, err := c.DeleteRole(public).Complete(context.Background())
	assert.ErrorContains(t, err, "public role")

	mod, _ := c.RoleByID(3)
	_, err = c.DeleteRole(mod).Complete(context.Background())
	assert.NilError(t, err)
	_, ok := c.RoleByID(3)
	assert.Assert(t, !ok)
}

func TestCreateWebhook(t *testing.T) {
	c, requester := newTestClient(2)
	requester.Respond(rest.CreateWebhook, discord.Webhook{ID: 40, Name: "hook", ChannelID: textID, Token: "secret"})

	_, err := c.CreateWebhook(textID, "my clyde").Complete(context.Background())
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)

	w, err := c.CreateWebhook(textID, "hook").Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, w.URL(), "https://discord.com/api/webhooks/40/secret")

	requester.Respond(rest.DeleteWebhook, nil)
	_, err = c.DeleteWebhook(w).Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, requester.RequestsTo(rest.DeleteWebhook)[0].Route.URL(), "/webhooks/40")
}

func TestCreateScheduledEvent(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	c, requester := newTestClient(2)
	requester.Respond(rest.CreateScheduledEvent, discord.ScheduledEvent{ID: 55, GuildID: guildID, Name: "meetup", EntityType: discord.ScheduledEventTypeExternal})

	_, err := c.CreateScheduledEvent(guildID, "meetup", start).SetLocation("park").Complete(ctx)
	assert.ErrorContains(t, err, "End Time")

	_, err = c.CreateScheduledEvent(guildID, "meetup", start).SetLocation("park").SetEndTime(start.Add(-time.Minute)).Complete(ctx)
	assert.ErrorContains(t, err, "end before starting")

	_, err = c.CreateScheduledEvent(guildID, "meetup", time.Now().Add(-time.Hour)).SetChannel(voiceID).Complete(ctx)
	assert.ErrorContains(t, err, "in the past")

	_, err = c.CreateScheduledEvent(guildID, "meetup", start).SetChannel(textID).Complete(ctx)
	assert.ErrorContains(t, err, "stage or voice")
	assert.Equal(t, requester.Count(), 0)

	e, err := c.CreateScheduledEvent(guildID, "meetup", start).SetLocation("park").SetEndTime(start.Add(time.Hour)).Complete(ctx)
	assert.NilError(t, err)
	assert.Assert(t, e.IsExternal())
	rq := requester.RequestsTo(rest.CreateScheduledEvent)[0]
	assert.Assert(t, cmp.Contains(body(t, rq), `"entity_metadata":{"location":"park"}`))
	assert.Assert(t, cmp.Contains(body(t, rq), `"entity_type":3`))
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	c, requester := newTestClient()
	requester.Respond(rest.CreateMessage, discord.Message{ID: 600, ChannelID: textID, Content: "hello", Author: discord.User{ID: selfID}})

	_, err := c.SendMessage(textID).SetContent("   ").Complete(ctx)
	assert.Assert(t, discord.IsErrorResponse(err, discord.ErrorResponseCannotSendEmptyMessage))

	_, err = c.SendMessage(textID).SetContent(strings.Repeat("a", discord.MaxMessageContentLength+1)).Complete(ctx)
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)

	embed, err := discord.NewEmbedBuilder().SetDescription("body").Build()
	assert.NilError(t, err)
	_, err = c.SendMessage(textID).SetEmbeds(embed).Complete(ctx)
	assert.Equal(t, missingPermission(t, err), discord.PermissionMessageEmbedLinks)

	tooMany := make([]discord.Embed, discord.MaxMessageEmbeds+1)
	for i := range tooMany {
		tooMany[i] = embed
	}
	_, err = c.SendMessage(textID).SetEmbeds(tooMany...).Complete(ctx)
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
	assert.Equal(t, requester.Count(), 0)

	m, err := c.SendMessage(textID).SetContent("hello").SetSuppressEmbeds(true).Complete(ctx)
	assert.NilError(t, err)
	assert.Equal(t, m.Content, "hello")
	_, ok := c.MessageByID(600)
	assert.Assert(t, ok)
	assert.Equal(t, body(t, requester.RequestsTo(rest.CreateMessage)[0]), `{"content":"hello","flags":4}`)
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	c, requester := newTestClient()
	requester.Respond(rest.DeleteMessage, nil)
	c.CacheMessage(discord.Message{ID: 1, ChannelID: textID, Author: discord.User{ID: selfID}})
	c.CacheMessage(discord.Message{ID: 2, ChannelID: textID, Author: discord.User{ID: 7}})

	_, err := c.DeleteMessage(textID, 1).Complete(ctx)
	assert.NilError(t, err)
	_, ok := c.MessageByID(1)
	assert.Assert(t, !ok)

	_, err = c.DeleteMessage(textID, 2).Complete(ctx)
	assert.Equal(t, missingPermission(t, err), discord.PermissionMessageManage)

	c.CacheMember(discord.Member{GuildID: guildID, User: discord.User{ID: selfID}, RoleIDs: []snowflake.ID{3}})
	_, err = c.DeleteMessage(textID, 2).Complete(ctx)
	assert.NilError(t, err)
}

func TestAddReaction(t *testing.T) {
	ctx := context.Background()
	c, requester := newTestClient(3)
	requester.Respond(rest.AddReaction, nil)

	laugh, err := discord.EmojiFromUnicode("U+1F602")
	assert.NilError(t, err)
	_, err = c.AddReaction(textID, 20, laugh).Complete(ctx)
	assert.NilError(t, err)

	dance, err := discord.EmojiFromCustom("dance", 70, true)
	assert.NilError(t, err)
	_, err = c.AddReaction(textID, 20, dance).Complete(ctx)
	assert.NilError(t, err)

	rqs := requester.RequestsTo(rest.AddReaction)
	assert.Equal(t, rqs[0].Route.URL(), "/channels/50/messages/20/reactions/%F0%9F%98%82/@me")
	assert.Equal(t, rqs[1].Route.URL(), "/channels/50/messages/20/reactions/dance:70/@me")

	_, err = c.AddReaction(textID, 20, discord.Emoji{}).Complete(ctx)
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
}

func TestAddReactionExisting(t *testing.T) {
	c, requester := newTestClient()
	requester.Respond(rest.AddReaction, nil)
	laugh, _ := discord.EmojiFromUnicode("😂")

	_, err := c.AddReaction(textID, 20, laugh).Complete(context.Background())
	assert.Equal(t, missingPermission(t, err), discord.PermissionMessageAddReaction)

	c.CacheMessage(discord.Message{ID: 20, ChannelID: textID, Reactions: []discord.Reaction{{Count: 1, Emoji: laugh}}})
	_, err = c.AddReaction(textID, 20, laugh).Complete(context.Background())
	assert.NilError(t, err)
}

func TestUpsertCommand(t *testing.T) {
	c, requester := newTestClient()
	requester.Respond(rest.CreateGuildCommand, discord.Command{ID: 77, Name: "ping", GuildID: guildID})

	_, err := c.UpsertCommand(guildID, discord.SlashCommand("Ping", "")).Complete(context.Background())
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
	assert.Equal(t, requester.Count(), 0)

	cmd, err := c.UpsertCommand(guildID, discord.SlashCommand("ping", "Replies with pong")).Complete(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, cmd.AsMention(), "</ping:77>")
	assert.Equal(t, requester.RequestsTo(rest.CreateGuildCommand)[0].Route.URL(), "/applications/900/guilds/1/commands")
}
