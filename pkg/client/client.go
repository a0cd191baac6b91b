// Package client provides the shared handle that every entity operation goes through.
//
// A Client owns the entity cache and the REST dispatcher. Entities never point back to it;
// callers pass the Client explicitly and resolve relations through its lookups, which report
// whether the entity is cached instead of assuming it is.
package client

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/cache"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
	"github.com/norio-nomura/discordkit/pkg/xiter"
)

// DefaultMessageCacheSize is the number of messages kept when WithMessageCacheSize is not given.
const DefaultMessageCacheSize = 1000

// Client is safe for concurrent use.
type Client struct {
	requester     rest.Requester
	logger        *slog.Logger
	applicationID snowflake.ID

	self     atomic.Pointer[discord.User]
	guilds   *cache.Map[discord.Guild]
	channels *cache.Map[discord.Channel]
	members  *cache.Map[*cache.Map[discord.Member]]
	messages *cache.Ring[discord.Message]
}

// Option configures a Client.
type Option func(*config)

type config struct {
	logger           *slog.Logger
	messageCacheSize int
	applicationID    snowflake.ID
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMessageCacheSize bounds the message cache. Zero disables it.
func WithMessageCacheSize(size int) Option {
	return func(c *config) { c.messageCacheSize = size }
}

// WithApplicationID sets the application that owns commands and SKUs. Defaults to the ID of
// the self user, which is the same for bots.
func WithApplicationID(id snowflake.ID) Option {
	return func(c *config) { c.applicationID = id }
}

// New returns a Client sending requests through requester.
func New(requester rest.Requester, opts ...Option) *Client {
	cfg := config{messageCacheSize: DefaultMessageCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Client{
		requester:     requester,
		logger:        cfg.logger,
		applicationID: cfg.applicationID,
		guilds:        cache.NewMap[discord.Guild](),
		channels:      cache.NewMap[discord.Channel](),
		members:       cache.NewMap[*cache.Map[discord.Member]](),
		messages:      cache.NewRing[discord.Message](cfg.messageCacheSize),
	}
}

// Requester returns the dispatcher used for every action.
func (c *Client) Requester() rest.Requester { return c.requester }

func (c *Client) Logger() *slog.Logger { return c.logger }

// SelfUser returns the logged in user once it is known.
func (c *Client) SelfUser() (discord.User, bool) {
	u := c.self.Load()
	if u == nil {
		return discord.User{}, false
	}
	return *u, true
}

// SetSelfUser records the logged in user.
func (c *Client) SetSelfUser(u discord.User) {
	c.self.Store(&u)
}

// ApplicationID returns the configured application, falling back to the self user.
func (c *Client) ApplicationID() (snowflake.ID, bool) {
	if c.applicationID != 0 {
		return c.applicationID, true
	}
	if u, ok := c.SelfUser(); ok {
		return u.ID, true
	}
	return 0, false
}

func (c *Client) GuildByID(id snowflake.ID) (discord.Guild, bool) {
	return c.guilds.Get(id)
}

func (c *Client) ChannelByID(id snowflake.ID) (discord.Channel, bool) {
	return c.channels.Get(id)
}

// RoleByID searches the roles of every cached guild.
func (c *Client) RoleByID(id snowflake.ID) (discord.Role, bool) {
	for g := range c.guilds.All() {
		if r, ok := g.RoleByID(id); ok {
			return r, true
		}
	}
	return discord.Role{}, false
}

// EmojiByID searches the custom emojis of every cached guild.
func (c *Client) EmojiByID(id snowflake.ID) (discord.Emoji, bool) {
	for g := range c.guilds.All() {
		if e, ok := g.EmojiByID(id); ok {
			return e, true
		}
	}
	return discord.Emoji{}, false
}

func (c *Client) MessageByID(id snowflake.ID) (discord.Message, bool) {
	return c.messages.Get(id)
}

func (c *Client) MemberByID(guildID, userID snowflake.ID) (discord.Member, bool) {
	members, ok := c.members.Get(guildID)
	if !ok {
		return discord.Member{}, false
	}
	return members.Get(userID)
}

// SelfMember returns the logged in user's membership in guildID.
func (c *Client) SelfMember(guildID snowflake.ID) (discord.Member, bool) {
	self, ok := c.SelfUser()
	if !ok {
		return discord.Member{}, false
	}
	return c.MemberByID(guildID, self.ID)
}

// Guilds returns every cached guild ordered by ID.
func (c *Client) Guilds() []discord.Guild {
	return xiter.SortedBy(c.guilds.All(), func(g discord.Guild) snowflake.ID { return g.ID })
}

// GuildChannels returns the cached channels of guildID ordered by position.
func (c *Client) GuildChannels(guildID snowflake.ID) []discord.GuildChannel {
	channels := xiter.Map(c.channels.All(), func(ch discord.Channel) discord.GuildChannel {
		gc, _ := ch.(discord.GuildChannel)
		return gc
	})
	inGuild := xiter.Filter(channels, func(gc discord.GuildChannel) bool {
		return gc != nil && gc.GuildID() == guildID
	})
	return xiter.SortedBy(inGuild, discord.GuildChannel.Position)
}

// CacheGuild stores g, replacing the previous snapshot.
func (c *Client) CacheGuild(g discord.Guild) discord.Guild {
	g.Normalize()
	c.guilds.Put(g.ID, g)
	return g
}

// CacheRole replaces or adds r in the snapshot of its guild.
func (c *Client) CacheRole(r discord.Role) {
	g, ok := c.guilds.Get(r.GuildID)
	if !ok {
		return
	}
	roles := slices.Clone(g.Roles)
	if i := slices.IndexFunc(roles, func(old discord.Role) bool { return old.ID == r.ID }); i >= 0 {
		roles[i] = r
	} else {
		roles = append(roles, r)
	}
	g.Roles = roles
	c.guilds.Put(g.ID, g)
}

// UncacheRole removes roleID from the snapshot of guildID.
func (c *Client) UncacheRole(guildID, roleID snowflake.ID) {
	g, ok := c.guilds.Get(guildID)
	if !ok {
		return
	}
	g.Roles = slices.DeleteFunc(slices.Clone(g.Roles), func(r discord.Role) bool { return r.ID == roleID })
	c.guilds.Put(g.ID, g)
}

func (c *Client) CacheChannel(ch discord.Channel) {
	c.channels.Put(ch.ID(), ch)
}

func (c *Client) UncacheChannel(id snowflake.ID) {
	c.channels.Remove(id)
}

func (c *Client) CacheMember(m discord.Member) {
	members, _ := c.members.LoadOrPut(m.GuildID, cache.NewMap[discord.Member]())
	members.Put(m.User.ID, m)
}

// CacheMessage stores m, evicting the oldest message when the cache is full.
func (c *Client) CacheMessage(m discord.Message) {
	if evicted, ok := c.messages.Put(m.ID, m); ok {
		c.logger.Debug("Evicted message from cache", slog.Any("message.id", evicted))
	}
}

func (c *Client) UncacheMessage(id snowflake.ID) {
	c.messages.Remove(id)
}

// UncacheGuild drops the guild with its channels, members and messages.
func (c *Client) UncacheGuild(id snowflake.ID) {
	c.guilds.Remove(id)
	c.members.Remove(id)
	c.channels.RemoveIf(func(ch discord.Channel) bool {
		gc, ok := ch.(discord.GuildChannel)
		return ok && gc.GuildID() == id
	})
	c.messages.RemoveIf(func(m discord.Message) bool { return m.GuildID == id })
}
