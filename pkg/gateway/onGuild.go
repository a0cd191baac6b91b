package gateway

import (
	"log/slog"

	"github.com/disgoorg/disgo/events"

	"github.com/norio-nomura/discordkit/pkg/client"
	"github.com/norio-nomura/discordkit/pkg/discord"
)

// cacheHandler replaces cached guild, role, channel and member snapshots as update events
// arrive, so permission checks see current state.
type cacheHandler struct {
	client *client.Client
}

func (h cacheHandler) logError(msg string, err error, attrs ...any) {
	h.client.Logger().Error(msg, append(attrs, slog.Any("err", err))...)
}

// onGuildUpdate replaces the guild. Update payloads carry no roles or emojis, so the cached
// ones are kept.
func (h cacheHandler) onGuildUpdate(e *events.GuildUpdate) {
	g, err := convert[discord.Guild](e.Guild)
	if err != nil {
		h.logError("Failed to convert guild", err, slog.Any("guild.id", e.GuildID))
		return
	}
	if old, ok := h.client.GuildByID(e.GuildID); ok {
		if len(g.Roles) == 0 {
			g.Roles = old.Roles
		}
		if len(g.Emojis) == 0 {
			g.Emojis = old.Emojis
		}
	}
	h.client.CacheGuild(g)
}

func (h cacheHandler) onRoleCreate(e *events.RoleCreate) { h.cacheRole(e.GenericRole) }
func (h cacheHandler) onRoleUpdate(e *events.RoleUpdate) { h.cacheRole(e.GenericRole) }

func (h cacheHandler) onRoleDelete(e *events.RoleDelete) {
	h.client.UncacheRole(e.GuildID, e.RoleID)
}

func (h cacheHandler) cacheRole(e *events.GenericRole) {
	r, err := convert[discord.Role](e.Role)
	if err != nil {
		h.logError("Failed to convert role", err, slog.Any("role.id", e.RoleID))
		return
	}
	r.GuildID = e.GuildID
	h.client.CacheRole(r)
}

func (h cacheHandler) onChannelCreate(e *events.GuildChannelCreate) {
	h.cacheChannel(e.GenericGuildChannel)
}

func (h cacheHandler) onChannelUpdate(e *events.GuildChannelUpdate) {
	h.cacheChannel(e.GenericGuildChannel)
}

func (h cacheHandler) onChannelDelete(e *events.GuildChannelDelete) {
	h.client.UncacheChannel(e.ChannelID)
}

func (h cacheHandler) cacheChannel(e *events.GenericGuildChannel) {
	p, err := convert[discord.ChannelPayload](e.Channel)
	if err != nil {
		h.logError("Failed to convert channel", err, slog.Any("channel.id", e.ChannelID))
		return
	}
	if p.GuildID == 0 {
		p.GuildID = e.GuildID
	}
	h.client.CacheChannel(discord.ChannelFromPayload(&p))
}

func (h cacheHandler) onMemberUpdate(e *events.GuildMemberUpdate) {
	m, err := convert[discord.Member](e.Member)
	if err != nil {
		h.logError("Failed to convert member", err, slog.Any("guild.id", e.GuildID))
		return
	}
	m.GuildID = e.GuildID
	h.client.CacheMember(m)
}
