// Package gateway runs the Discord gateway session on disgo and keeps a client.Client cache in
// sync with the events it receives.
package gateway

import (
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/gateway"

	"github.com/norio-nomura/discordkit/pkg/client"
	"github.com/norio-nomura/discordkit/pkg/options"
)

// New creates and returns a new Discord bot client configured with the given options.
// Its listeners feed guilds and messages into c. Extra config options are applied last, which
// lets callers share a rest client with c.
func New(o *options.Options, c *client.Client, extra ...bot.ConfigOpt) (bot.Client, error) {
	handler := newMessageEventsHandler(c)
	ready := readyHandler{options: o, client: c}
	caches := cacheHandler{client: c}
	opts := []bot.ConfigOpt{
		bot.WithLogger(c.Logger()),
		bot.WithEventListeners(
			bot.NewListenerFunc(ready.onReady),
			bot.NewListenerFunc(ready.onGuildJoin),
			bot.NewListenerFunc(ready.onGuildLeave),
			bot.NewListenerFunc(caches.onGuildUpdate),
			bot.NewListenerFunc(caches.onRoleCreate),
			bot.NewListenerFunc(caches.onRoleUpdate),
			bot.NewListenerFunc(caches.onRoleDelete),
			bot.NewListenerFunc(caches.onChannelCreate),
			bot.NewListenerFunc(caches.onChannelUpdate),
			bot.NewListenerFunc(caches.onChannelDelete),
			bot.NewListenerFunc(caches.onMemberUpdate),
			bot.NewListenerFunc(handler.onMessageCreate),
			bot.NewListenerFunc(handler.onMessageUpdate),
			bot.NewListenerFunc(handler.onMessageDelete),
		),
		bot.WithEventManagerConfigOpts(
			bot.WithAsyncEventsEnabled(),
		),
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentDirectMessages,
			),
		),
	}
	return disgo.New(o.DiscordToken, append(opts, extra...)...)
}
