package gateway

import (
	"context"
	"log/slog"
	"slices"

	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/client"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/options"
)

type readyHandler struct {
	options *options.Options
	client  *client.Client
}

// onReady caches the self user, sets the presence and preloads the guilds of the session.
func (h readyHandler) onReady(e *events.Ready) {
	logger := h.client.Logger()
	self, err := convert[discord.User](e.User)
	if err != nil {
		logger.Error("Failed to convert self user", slog.Any("err", err))
	} else {
		h.client.SetSelfUser(self)
	}

	if opt, ok := h.presence(); ok {
		ctx, cancel := h.options.ContextWithRestTimeout(context.Background())
		defer cancel()
		if err := e.Client().SetPresence(ctx, opt); err != nil {
			logger.Error("Failed to set presence", slog.Any("err", err))
		} else {
			logger.Info("`ready`: changed status to", slog.String("playing", h.options.DiscordPlaying))
		}
	}

	ids := make([]snowflake.ID, 0, len(e.Guilds))
	for _, g := range e.Guilds {
		ids = append(ids, g.ID)
	}
	for _, id := range h.guildsToLoad(ids) {
		h.loadGuild(id)
	}
}

func (h readyHandler) onGuildJoin(e *events.GuildJoin) {
	if len(h.guildsToLoad([]snowflake.ID{e.GuildID})) > 0 {
		h.loadGuild(e.GuildID)
	}
}

func (h readyHandler) onGuildLeave(e *events.GuildLeave) {
	h.client.UncacheGuild(e.GuildID)
	h.client.Logger().Info("Left guild", slog.Any("guild.id", e.GuildID))
}

// guildsToLoad filters ids by the configured guild list, if any.
func (h readyHandler) guildsToLoad(ids []snowflake.ID) []snowflake.ID {
	allowed, err := h.options.GuildIDs()
	if err != nil {
		h.client.Logger().Error("Failed to parse guild IDs", slog.Any("err", err))
		return nil
	}
	if allowed == nil {
		return ids
	}
	return slices.DeleteFunc(slices.Clone(ids), func(id snowflake.ID) bool {
		return !slices.Contains(allowed, id)
	})
}

func (h readyHandler) loadGuild(id snowflake.ID) {
	ctx, cancel := h.options.ContextWithRestTimeout(context.Background())
	h.client.LoadGuild(id).Queue(ctx, func(g discord.Guild) {
		defer cancel()
		h.client.Logger().Info("Loaded guild", slog.Any("guild.id", g.ID), slog.String("name", g.Name))
	}, func(err error) {
		defer cancel()
		h.client.Logger().Error("Failed to load guild", slog.Any("guild.id", id), slog.Any("err", err))
	})
}

func (h readyHandler) presence() (gateway.PresenceOpt, bool) {
	a, ok, err := h.options.Activity()
	if err != nil {
		h.client.Logger().Error("Failed to build presence", slog.Any("err", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return presenceOpt(a), true
}

// presenceOpt maps an activity onto disgo's presence options.
func presenceOpt(a discord.Activity) gateway.PresenceOpt {
	switch a.Type {
	case discord.ActivityTypeStreaming:
		return gateway.WithStreamingActivity(a.Name, a.URL)
	case discord.ActivityTypeListening:
		return gateway.WithListeningActivity(a.Name)
	case discord.ActivityTypeWatching:
		return gateway.WithWatchingActivity(a.Name)
	case discord.ActivityTypeCustomStatus:
		return gateway.WithCustomActivity(a.State)
	case discord.ActivityTypeCompeting:
		return gateway.WithCompetingActivity(a.Name)
	default:
		return gateway.WithPlayingActivity(a.Name)
	}
}
