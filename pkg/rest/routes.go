package rest

import "net/http"

// Users
var (
	GetSelfUser = NewRoute(http.MethodGet, "/users/@me")
	GetUser     = NewRoute(http.MethodGet, "/users/{user.id}")
)

// Guilds
var (
	GetGuild       = NewRoute(http.MethodGet, "/guilds/{guild.id}")
	GetGuildMember = NewRoute(http.MethodGet, "/guilds/{guild.id}/members/{user.id}")
)

// Channels
var (
	GetChannel         = NewRoute(http.MethodGet, "/channels/{channel.id}")
	GetGuildChannels   = NewRoute(http.MethodGet, "/guilds/{guild.id}/channels")
	CreateGuildChannel = NewRoute(http.MethodPost, "/guilds/{guild.id}/channels")
	DeleteChannel      = NewRoute(http.MethodDelete, "/channels/{channel.id}")
)

// Roles
var (
	GetRoles   = NewRoute(http.MethodGet, "/guilds/{guild.id}/roles")
	CreateRole = NewRoute(http.MethodPost, "/guilds/{guild.id}/roles")
	UpdateRole = NewRoute(http.MethodPatch, "/guilds/{guild.id}/roles/{role.id}")
	DeleteRole = NewRoute(http.MethodDelete, "/guilds/{guild.id}/roles/{role.id}")
)

// Messages and reactions
var (
	GetMessage    = NewRoute(http.MethodGet, "/channels/{channel.id}/messages/{message.id}")
	CreateMessage = NewRoute(http.MethodPost, "/channels/{channel.id}/messages")
	DeleteMessage = NewRoute(http.MethodDelete, "/channels/{channel.id}/messages/{message.id}")
	AddReaction   = NewRoute(http.MethodPut, "/channels/{channel.id}/messages/{message.id}/reactions/{emoji}/@me")
)

// Webhooks
var (
	GetChannelWebhooks = NewRoute(http.MethodGet, "/channels/{channel.id}/webhooks")
	CreateWebhook      = NewRoute(http.MethodPost, "/channels/{channel.id}/webhooks")
	DeleteWebhook      = NewRoute(http.MethodDelete, "/webhooks/{webhook.id}")
)

// Scheduled events and stages
var (
	GetScheduledEvents   = NewRoute(http.MethodGet, "/guilds/{guild.id}/scheduled-events")
	CreateScheduledEvent = NewRoute(http.MethodPost, "/guilds/{guild.id}/scheduled-events")
	GetStageInstance     = NewRoute(http.MethodGet, "/stage-instances/{channel.id}")
)

// Applications
var (
	GetSkus             = NewRoute(http.MethodGet, "/applications/{application.id}/skus")
	GetGlobalCommands   = NewRoute(http.MethodGet, "/applications/{application.id}/commands")
	CreateGlobalCommand = NewRoute(http.MethodPost, "/applications/{application.id}/commands")
	GetGuildCommands    = NewRoute(http.MethodGet, "/applications/{application.id}/guilds/{guild.id}/commands")
	CreateGuildCommand  = NewRoute(http.MethodPost, "/applications/{application.id}/guilds/{guild.id}/commands")
)
