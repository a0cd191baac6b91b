package client

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/discord"
)

// selfContext returns the guild and self member when both are cached.
func (c *Client) selfContext(guildID snowflake.ID) (discord.Guild, discord.Member, bool) {
	g, ok := c.GuildByID(guildID)
	if !ok {
		return g, discord.Member{}, false
	}
	m, ok := c.SelfMember(guildID)
	return g, m, ok
}

// checkGuildPermissions fails when the cached self member lacks any of perms in guildID.
// Nothing is checked while the guild or the self member is not cached.
func (c *Client) checkGuildPermissions(guildID snowflake.ID, perms ...discord.Permission) error {
	g, self, ok := c.selfContext(guildID)
	if !ok {
		return nil
	}
	effective := discord.EffectivePermissions(g, self)
	for _, p := range perms {
		if !effective.Has(p) {
			return &discord.InsufficientPermissionError{GuildID: guildID, Permission: p}
		}
	}
	return nil
}

// checkChannelPermissions fails when the cached self member lacks any of perms in channelID.
// Threads are checked against their parent. Private channels are never checked.
func (c *Client) checkChannelPermissions(channelID snowflake.ID, perms ...discord.Permission) error {
	ch, ok := c.ChannelByID(channelID)
	if !ok {
		return nil
	}
	container, ok := c.permissionContainer(ch)
	if !ok {
		return nil
	}
	g, self, ok := c.selfContext(container.GuildID())
	if !ok {
		return nil
	}
	effective := discord.EffectiveChannelPermissions(g, self, container)
	for _, p := range perms {
		if !effective.Has(p) {
			return &discord.InsufficientPermissionError{GuildID: g.ID, ChannelID: channelID, Permission: p}
		}
	}
	return nil
}

func (c *Client) permissionContainer(ch discord.Channel) (discord.PermissionContainer, bool) {
	if container, ok := ch.(discord.PermissionContainer); ok {
		return container, true
	}
	if thread, ok := ch.(discord.ThreadChannel); ok {
		parent, ok := c.ChannelByID(thread.ParentID())
		if !ok {
			return nil, false
		}
		container, ok := parent.(discord.PermissionContainer)
		return container, ok
	}
	return nil, false
}

// checkRoleHierarchy fails when the self member cannot interact with role.
func (c *Client) checkRoleHierarchy(role discord.Role) error {
	g, self, ok := c.selfContext(role.GuildID)
	if !ok {
		return nil
	}
	if !discord.CanInteractRole(g, self, role) {
		return &discord.HierarchyError{Reason: "Can't modify a role with higher or equal highest role than yourself! Role: " + role.Name}
	}
	return nil
}

// checkGrantable fails when perms contains a permission the self member does not have.
func (c *Client) checkGrantable(guildID snowflake.ID, perms discord.Permissions) error {
	g, self, ok := c.selfContext(guildID)
	if !ok {
		return nil
	}
	missing := perms &^ discord.EffectivePermissions(g, self)
	if missing == 0 {
		return nil
	}
	perm := discord.PermissionUnknown
	if known := missing.Slice(); len(known) > 0 {
		perm = known[0]
	}
	return &discord.InsufficientPermissionError{GuildID: guildID, Permission: perm}
}
