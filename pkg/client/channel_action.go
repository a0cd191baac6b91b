package client

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

// ChannelAction creates a guild channel.
type ChannelAction struct {
	builder
	c       *Client
	guildID snowflake.ID
	data    discord.ChannelCreate
}

// CreateChannel starts a channel of typ named name in guildID. Requires MANAGE_CHANNELS.
func (c *Client) CreateChannel(guildID snowflake.ID, typ discord.ChannelType, name string) *ChannelAction {
	a := &ChannelAction{c: c, guildID: guildID, data: discord.ChannelCreate{Type: typ}}
	a.check(checks.Check(typ.IsGuild() && !typ.IsThread(), "Cannot create a channel of type %s", typ))
	return a.SetName(name)
}

// CreateCopy starts a channel with the settings of src. Parent and overrides are only copied
// when src is in guildID.
func (c *Client) CreateCopy(guildID snowflake.ID, src discord.Copyable) *ChannelAction {
	return c.CreateChannel(guildID, src.Type(), src.Name()).Copy(src)
}

func (a *ChannelAction) Reason(reason string) *ChannelAction {
	a.reason = reason
	return a
}

func (a *ChannelAction) SetName(name string) *ChannelAction {
	if a.check(checks.InRange(name, 1, discord.MaxChannelNameLength, "Name")) {
		a.data.Name = name
	}
	return a
}

// SetTopic sets the topic of text, news, stage, forum and media channels.
func (a *ChannelAction) SetTopic(topic string) *ChannelAction {
	limit := discord.MaxChannelTopicLength
	switch a.data.Type {
	case discord.ChannelTypeForum, discord.ChannelTypeMedia:
		limit = discord.MaxForumTopicLength
	case discord.ChannelTypeText, discord.ChannelTypeNews, discord.ChannelTypeStage:
	default:
		a.check(fmt.Errorf("can only set topic on text, news, stage, forum and media channels, not %s", a.data.Type))
		return a
	}
	if a.check(checks.NotLonger(topic, limit, "Topic")) {
		a.data.Topic = topic
	}
	return a
}

func (a *ChannelAction) SetNSFW(nsfw bool) *ChannelAction {
	a.data.NSFW = nsfw
	return a
}

// SetParent places the channel in a category. A cached parent must be a category of the same guild.
func (a *ChannelAction) SetParent(categoryID snowflake.ID) *ChannelAction {
	if a.data.Type == discord.ChannelTypeCategory {
		a.check(fmt.Errorf("category channels cannot be nested"))
		return a
	}
	if ch, ok := a.c.ChannelByID(categoryID); ok {
		cat, isCategory := ch.(discord.Category)
		if !a.check(checks.Check(isCategory, "Parent %s is not a category", categoryID)) {
			return a
		}
		if !a.check(checks.Check(cat.GuildID() == a.guildID, "Category %s must be from the same guild", categoryID)) {
			return a
		}
	}
	a.data.ParentID = categoryID
	return a
}

func (a *ChannelAction) SetPosition(position int) *ChannelAction {
	if a.check(checks.NotNegative(position, "Position")) {
		a.data.Position = &position
	}
	return a
}

// SetSlowmode sets the per user message cooldown in seconds.
func (a *ChannelAction) SetSlowmode(seconds int) *ChannelAction {
	if a.check(checks.Between(seconds, 0, discord.MaxSlowmode, "Slowmode")) {
		a.data.RateLimitPerUser = seconds
	}
	return a
}

// SetBitrate sets the bitrate of audio channels, bounded by the boost tier of a cached guild.
func (a *ChannelAction) SetBitrate(bitrate int) *ChannelAction {
	if !a.check(checks.Check(a.data.Type.IsAudio(), "Can only set bitrate on audio channels, not %s", a.data.Type)) {
		return a
	}
	maxBitrate := discord.BoostTierNone.MaxBitrate()
	if g, ok := a.c.GuildByID(a.guildID); ok {
		maxBitrate = g.MaxBitrate()
	}
	if a.check(checks.Between(bitrate, discord.MinBitrate, maxBitrate, "Bitrate")) {
		a.data.Bitrate = bitrate
	}
	return a
}

// SetUserLimit caps the members connected to an audio channel. Zero means no limit.
func (a *ChannelAction) SetUserLimit(limit int) *ChannelAction {
	maxLimit := discord.MaxVoiceUserLimit
	switch a.data.Type {
	case discord.ChannelTypeVoice:
	case discord.ChannelTypeStage:
		maxLimit = discord.MaxStageUserLimit
	default:
		a.check(fmt.Errorf("can only set user limit on audio channels, not %s", a.data.Type))
		return a
	}
	if a.check(checks.Between(limit, 0, maxLimit, "User limit")) {
		a.data.UserLimit = limit
	}
	return a
}

// AddPermissionOverride adds or replaces the override of a role or member.
func (a *ChannelAction) AddPermissionOverride(id snowflake.ID, typ discord.OverrideType, allow, deny discord.Permissions) *ChannelAction {
	if !a.check(checks.Check(typ == discord.OverrideTypeRole || typ == discord.OverrideTypeMember, "Override type must be role or member")) {
		return a
	}
	o := discord.PermissionOverride{ID: id, Type: typ, Allow: allow, Deny: deny &^ allow}
	for i, old := range a.data.PermissionOverwrites {
		if old.ID == id {
			a.data.PermissionOverwrites[i] = o
			return a
		}
	}
	a.data.PermissionOverwrites = append(a.data.PermissionOverwrites, o)
	return a
}

// Copy replaces the settings with those of src, keeping the name and type already set when
// src has none. Settings bound to another guild are dropped.
func (a *ChannelAction) Copy(src discord.Copyable) *ChannelAction {
	data := src.CopyTemplate()
	if src.GuildID() != a.guildID {
		data.ParentID = 0
		data.PermissionOverwrites = nil
	}
	if data.Name == "" {
		data.Name = a.data.Name
	}
	if !data.Type.IsGuild() {
		data.Type = a.data.Type
	}
	a.data = data
	return a
}

// Data returns the payload the action sends.
func (a *ChannelAction) Data() discord.ChannelCreate { return a.data }

// Action builds the request. The created channel is cached.
func (a *ChannelAction) Action() *rest.Action[discord.Channel] {
	data := a.data
	action := rest.Map(newAction(a.c, rest.CreateGuildChannel, data, decodeChannel, a.guildID), func(ch discord.Channel) (discord.Channel, error) {
		a.c.CacheChannel(ch)
		return ch, nil
	})
	action.Precheck(func() error {
		if err := a.c.checkGuildPermissions(a.guildID, discord.PermissionManageChannel); err != nil {
			return err
		}
		if len(data.PermissionOverwrites) > 0 {
			return a.c.checkGuildPermissions(a.guildID, discord.PermissionManageRoles)
		}
		return nil
	})
	return finish(&a.builder, action)
}

func (a *ChannelAction) Complete(ctx context.Context) (discord.Channel, error) {
	return a.Action().Complete(ctx)
}

// DeleteChannel deletes a guild channel or closes a direct message. Guild channels require
// MANAGE_CHANNELS, threads MANAGE_THREADS.
func (c *Client) DeleteChannel(channelID snowflake.ID) *rest.Action[struct{}] {
	action := rest.Map(newAction[struct{}](c, rest.DeleteChannel, nil, nil, channelID), func(v struct{}) (struct{}, error) {
		c.UncacheChannel(channelID)
		return v, nil
	})
	return action.Precheck(func() error {
		ch, ok := c.ChannelByID(channelID)
		if !ok {
			return nil
		}
		if ch.Type().IsThread() {
			return c.checkChannelPermissions(channelID, discord.PermissionManageThreads)
		}
		if gc, ok := ch.(discord.GuildChannel); ok {
			if g, ok := c.GuildByID(gc.GuildID()); ok && g.HasFeature(discord.GuildFeatureCommunity) {
				if err := checks.Check(g.RulesChannelID != channelID, "Cannot delete the rules channel of a community guild"); err != nil {
					return err
				}
			}
			return c.checkChannelPermissions(channelID, discord.PermissionManageChannel)
		}
		return nil
	})
}
