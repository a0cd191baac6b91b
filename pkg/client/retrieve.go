package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

// newAction compiles route with params and sends body to it. A compile error fails the action.
func newAction[T any](c *Client, route rest.Route, body any, decode func(json.RawMessage) (T, error), params ...any) *rest.Action[T] {
	compiled, err := route.Compile(params...)
	if err != nil {
		return rest.Failed[T](err)
	}
	return rest.NewAction(c.requester, compiled, body, decode)
}

// ErrApplicationUnknown is returned by application scoped actions built before the self user
// is known and without WithApplicationID.
var ErrApplicationUnknown = errors.New("application ID is unknown")

func decodeChannel(raw json.RawMessage) (discord.Channel, error) {
	return discord.UnmarshalChannel(raw)
}

// RetrieveSelfUser fetches the logged in user and caches it.
func (c *Client) RetrieveSelfUser() *rest.Action[discord.User] {
	return rest.Map(newAction(c, rest.GetSelfUser, nil, rest.Decode[discord.User]()), func(u discord.User) (discord.User, error) {
		c.SetSelfUser(u)
		return u, nil
	})
}

func (c *Client) RetrieveUser(id snowflake.ID) *rest.Action[discord.User] {
	return newAction(c, rest.GetUser, nil, rest.Decode[discord.User](), id)
}

// RetrieveGuild fetches a guild with its roles and emojis and caches it.
func (c *Client) RetrieveGuild(id snowflake.ID) *rest.Action[discord.Guild] {
	return rest.Map(newAction(c, rest.GetGuild, nil, rest.Decode[discord.Guild](), id), func(g discord.Guild) (discord.Guild, error) {
		return c.CacheGuild(g), nil
	})
}

// LoadGuild fetches the guild, its channels and the self member, caching all of them. Once
// loaded, builders targeting the guild run their permission checks.
func (c *Client) LoadGuild(id snowflake.ID) *rest.Action[discord.Guild] {
	return rest.Then(c.RetrieveGuild(id), func(ctx context.Context, g discord.Guild) (discord.Guild, error) {
		self, ok := c.SelfUser()
		if !ok {
			var err error
			if self, err = c.RetrieveSelfUser().Complete(ctx); err != nil {
				return g, fmt.Errorf("failed to retrieve self user: %w", err)
			}
		}
		channels := c.RetrieveGuildChannels(id).Submit(ctx)
		if _, err := c.RetrieveMember(id, self.ID).Complete(ctx); err != nil {
			return g, fmt.Errorf("failed to retrieve self member: %w", err)
		}
		if _, err := channels.Await(ctx); err != nil {
			return g, fmt.Errorf("failed to retrieve channels: %w", err)
		}
		return g, nil
	})
}

// RetrieveChannel fetches a channel of any type and caches it.
func (c *Client) RetrieveChannel(id snowflake.ID) *rest.Action[discord.Channel] {
	return rest.Map(newAction(c, rest.GetChannel, nil, decodeChannel, id), func(ch discord.Channel) (discord.Channel, error) {
		c.CacheChannel(ch)
		return ch, nil
	})
}

// RetrieveGuildChannels fetches and caches every channel of a guild except threads.
func (c *Client) RetrieveGuildChannels(guildID snowflake.ID) *rest.Action[[]discord.Channel] {
	decode := func(raw json.RawMessage) ([]discord.Channel, error) {
		var payloads []json.RawMessage
		if err := json.Unmarshal(raw, &payloads); err != nil {
			return nil, err
		}
		channels := make([]discord.Channel, 0, len(payloads))
		for _, p := range payloads {
			ch, err := discord.UnmarshalChannel(p)
			if err != nil {
				return nil, err
			}
			c.CacheChannel(ch)
			channels = append(channels, ch)
		}
		return channels, nil
	}
	return newAction(c, rest.GetGuildChannels, nil, decode, guildID)
}

// RetrieveRoles fetches the roles of a guild. Roles are returned as sent, not sorted.
func (c *Client) RetrieveRoles(guildID snowflake.ID) *rest.Action[[]discord.Role] {
	return rest.Map(newAction(c, rest.GetRoles, nil, rest.Decode[[]discord.Role](), guildID), func(roles []discord.Role) ([]discord.Role, error) {
		for i := range roles {
			roles[i].GuildID = guildID
		}
		return roles, nil
	})
}

// RetrieveMember fetches a member and caches it.
func (c *Client) RetrieveMember(guildID, userID snowflake.ID) *rest.Action[discord.Member] {
	return rest.Map(newAction(c, rest.GetGuildMember, nil, rest.Decode[discord.Member](), guildID, userID), func(m discord.Member) (discord.Member, error) {
		m.GuildID = guildID
		c.CacheMember(m)
		return m, nil
	})
}

// RetrieveMessage fetches a message and caches it.
func (c *Client) RetrieveMessage(channelID, messageID snowflake.ID) *rest.Action[discord.Message] {
	a := rest.Map(newAction(c, rest.GetMessage, nil, rest.Decode[discord.Message](), channelID, messageID), func(m discord.Message) (discord.Message, error) {
		c.CacheMessage(m)
		return m, nil
	})
	return a.Precheck(func() error {
		return c.checkChannelPermissions(channelID, discord.PermissionViewChannel, discord.PermissionMessageHistory)
	})
}

// RetrieveWebhooks lists the webhooks of a channel. Requires MANAGE_WEBHOOKS.
func (c *Client) RetrieveWebhooks(channelID snowflake.ID) *rest.Action[[]discord.Webhook] {
	return newAction(c, rest.GetChannelWebhooks, nil, rest.Decode[[]discord.Webhook](), channelID).
		Precheck(func() error { return c.checkChannelPermissions(channelID, discord.PermissionManageWebhooks) })
}

// RetrieveScheduledEvents lists the scheduled events of a guild, with subscriber counts.
func (c *Client) RetrieveScheduledEvents(guildID snowflake.ID) *rest.Action[[]discord.ScheduledEvent] {
	compiled, err := rest.GetScheduledEvents.Compile(guildID)
	if err != nil {
		return rest.Failed[[]discord.ScheduledEvent](err)
	}
	return rest.NewAction(c.requester, compiled.WithQuery("with_user_count", "true"), nil, rest.Decode[[]discord.ScheduledEvent]())
}

func (c *Client) RetrieveStageInstance(channelID snowflake.ID) *rest.Action[discord.StageInstance] {
	return newAction(c, rest.GetStageInstance, nil, rest.Decode[discord.StageInstance](), channelID)
}

// RetrieveSkus lists the SKUs of the application.
func (c *Client) RetrieveSkus() *rest.Action[[]discord.Sku] {
	appID, ok := c.ApplicationID()
	if !ok {
		return rest.Failed[[]discord.Sku](ErrApplicationUnknown)
	}
	return newAction(c, rest.GetSkus, nil, rest.Decode[[]discord.Sku](), appID)
}

// RetrieveCommands lists the commands registered in guildID, or the global ones when guildID is 0.
func (c *Client) RetrieveCommands(guildID snowflake.ID) *rest.Action[[]discord.Command] {
	appID, ok := c.ApplicationID()
	if !ok {
		return rest.Failed[[]discord.Command](ErrApplicationUnknown)
	}
	if guildID == 0 {
		return newAction(c, rest.GetGlobalCommands, nil, rest.Decode[[]discord.Command](), appID)
	}
	return newAction(c, rest.GetGuildCommands, nil, rest.Decode[[]discord.Command](), appID, guildID)
}
