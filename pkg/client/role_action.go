package client

import (
	"context"
	"errors"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

type roleCreate struct {
	Name         string               `json:"name,omitempty"`
	Permissions  *discord.Permissions `json:"permissions,omitempty"`
	Colors       *discord.RoleColors  `json:"colors,omitempty"`
	Hoist        *bool                `json:"hoist,omitempty"`
	Icon         *discord.Icon        `json:"icon,omitempty"`
	UnicodeEmoji string               `json:"unicode_emoji,omitempty"`
	Mentionable  *bool                `json:"mentionable,omitempty"`
}

// RoleAction creates a role. Unset fields take Discord's defaults.
type RoleAction struct {
	builder
	c       *Client
	guildID snowflake.ID
	data    roleCreate
}

// CreateRole starts a role in guildID. Requires MANAGE_ROLES, and every permission granted to
// the role must be held by the bot.
func (c *Client) CreateRole(guildID snowflake.ID) *RoleAction {
	return &RoleAction{c: c, guildID: guildID}
}

func (a *RoleAction) Reason(reason string) *RoleAction {
	a.reason = reason
	return a
}

func (a *RoleAction) SetName(name string) *RoleAction {
	if a.check(checks.InRange(name, 1, discord.MaxRoleNameLength, "Name")) {
		a.data.Name = name
	}
	return a
}

func (a *RoleAction) SetPermissions(perms discord.Permissions) *RoleAction {
	a.data.Permissions = &perms
	return a
}

// SetColors sets the color style. Gradient and holographic styles need the enhanced role
// colors feature on a cached guild.
func (a *RoleAction) SetColors(colors discord.RoleColors) *RoleAction {
	if a.check(checkColors(a.c, a.guildID, colors)) {
		a.data.Colors = &colors
	}
	return a
}

func (a *RoleAction) SetHoisted(hoisted bool) *RoleAction {
	a.data.Hoist = &hoisted
	return a
}

func (a *RoleAction) SetMentionable(mentionable bool) *RoleAction {
	a.data.Mentionable = &mentionable
	return a
}

// SetIcon sets a custom icon. It replaces any unicode emoji icon.
func (a *RoleAction) SetIcon(icon *discord.Icon) *RoleAction {
	if a.check(checkRoleIcons(a.c, a.guildID)) {
		a.data.Icon = icon
		a.data.UnicodeEmoji = ""
	}
	return a
}

// SetEmoji uses a unicode emoji as icon. It replaces any custom icon.
func (a *RoleAction) SetEmoji(emoji string) *RoleAction {
	if a.check(checkRoleIcons(a.c, a.guildID)) {
		a.data.UnicodeEmoji = emoji
		a.data.Icon = nil
	}
	return a
}

// Action builds the request. The created role is added to the cached guild.
func (a *RoleAction) Action() *rest.Action[discord.Role] {
	data := a.data
	action := rest.Map(newAction(a.c, rest.CreateRole, data, rest.Decode[discord.Role](), a.guildID), func(r discord.Role) (discord.Role, error) {
		r.GuildID = a.guildID
		a.c.CacheRole(r)
		return r, nil
	})
	action.Precheck(func() error {
		if err := a.c.checkGuildPermissions(a.guildID, discord.PermissionManageRoles); err != nil {
			return err
		}
		if data.Permissions != nil {
			return a.c.checkGrantable(a.guildID, *data.Permissions)
		}
		return nil
	})
	return finish(&a.builder, action)
}

func (a *RoleAction) Complete(ctx context.Context) (discord.Role, error) {
	return a.Action().Complete(ctx)
}

func checkColors(c *Client, guildID snowflake.ID, colors discord.RoleColors) error {
	if colors.IsHolographic() {
		if err := checks.Check(colors == discord.HolographicColors(), "Holographic roles must use the holographic color triple"); err != nil {
			return err
		}
	}
	if !colors.IsGradient() && !colors.IsHolographic() {
		return nil
	}
	if g, ok := c.GuildByID(guildID); ok {
		return checks.Check(g.HasFeature(discord.GuildFeatureEnhancedColors), "Guild %s does not have the %s feature", guildID, discord.GuildFeatureEnhancedColors)
	}
	return nil
}

func checkRoleIcons(c *Client, guildID snowflake.ID) error {
	if g, ok := c.GuildByID(guildID); ok {
		return checks.Check(g.HasFeature(discord.GuildFeatureRoleIcons), "Guild %s does not have the %s feature", guildID, discord.GuildFeatureRoleIcons)
	}
	return nil
}

type roleUpdate struct {
	Name         *string                      `json:"name,omitempty"`
	Permissions  *discord.Permissions         `json:"permissions,omitempty"`
	Colors       *discord.RoleColors          `json:"colors,omitempty"`
	Hoist        *bool                        `json:"hoist,omitempty"`
	Icon         *json.Nullable[discord.Icon] `json:"icon,omitempty"`
	UnicodeEmoji *json.Nullable[string]       `json:"unicode_emoji,omitempty"`
	Mentionable  *bool                        `json:"mentionable,omitempty"`
}

// RoleManager modifies an existing role. Only fields that were set are sent.
type RoleManager struct {
	builder
	c    *Client
	role discord.Role
	data roleUpdate
}

// ModifyRole starts an update of role. Requires MANAGE_ROLES and a highest role above role.
func (c *Client) ModifyRole(role discord.Role) *RoleManager {
	return &RoleManager{c: c, role: role}
}

func (m *RoleManager) Reason(reason string) *RoleManager {
	m.reason = reason
	return m
}

func (m *RoleManager) SetName(name string) *RoleManager {
	if m.check(checks.InRange(name, 1, discord.MaxRoleNameLength, "Name")) {
		m.data.Name = &name
	}
	return m
}

func (m *RoleManager) SetPermissions(perms discord.Permissions) *RoleManager {
	m.data.Permissions = &perms
	return m
}

func (m *RoleManager) SetColors(colors discord.RoleColors) *RoleManager {
	if m.check(checkColors(m.c, m.role.GuildID, colors)) {
		m.data.Colors = &colors
	}
	return m
}

func (m *RoleManager) SetHoisted(hoisted bool) *RoleManager {
	m.data.Hoist = &hoisted
	return m
}

func (m *RoleManager) SetMentionable(mentionable bool) *RoleManager {
	m.data.Mentionable = &mentionable
	return m
}

// SetIcon replaces the icon. A nil icon removes both the custom and the emoji icon.
func (m *RoleManager) SetIcon(icon *discord.Icon) *RoleManager {
	if icon == nil {
		m.data.Icon = json.NullPtr[discord.Icon]()
		m.data.UnicodeEmoji = json.NullPtr[string]()
		return m
	}
	if m.check(checkRoleIcons(m.c, m.role.GuildID)) {
		m.data.Icon = json.NewNullablePtr(*icon)
		m.data.UnicodeEmoji = json.NullPtr[string]()
	}
	return m
}

// SetEmoji uses a unicode emoji as icon. An empty emoji removes it.
func (m *RoleManager) SetEmoji(emoji string) *RoleManager {
	if emoji == "" {
		m.data.UnicodeEmoji = json.NullPtr[string]()
		return m
	}
	if m.check(checkRoleIcons(m.c, m.role.GuildID)) {
		m.data.UnicodeEmoji = json.NewNullablePtr(emoji)
		m.data.Icon = json.NullPtr[discord.Icon]()
	}
	return m
}

// Action builds the request. The updated role replaces the cached one.
func (m *RoleManager) Action() *rest.Action[discord.Role] {
	data, role := m.data, m.role
	action := rest.Map(newAction(m.c, rest.UpdateRole, data, rest.Decode[discord.Role](), role.GuildID, role.ID), func(r discord.Role) (discord.Role, error) {
		r.GuildID = role.GuildID
		m.c.CacheRole(r)
		return r, nil
	})
	action.Precheck(func() error {
		if err := m.c.checkGuildPermissions(role.GuildID, discord.PermissionManageRoles); err != nil {
			return err
		}
		if err := m.c.checkRoleHierarchy(role); err != nil {
			return err
		}
		if data.Permissions != nil {
			// permissions the role already has may stay
			return m.c.checkGrantable(role.GuildID, *data.Permissions&^role.Permissions)
		}
		return nil
	})
	return finish(&m.builder, action)
}

func (m *RoleManager) Complete(ctx context.Context) (discord.Role, error) {
	return m.Action().Complete(ctx)
}

// DeleteRole deletes a role. Requires MANAGE_ROLES and a highest role above role.
func (c *Client) DeleteRole(role discord.Role) *rest.Action[struct{}] {
	action := rest.Map(newAction[struct{}](c, rest.DeleteRole, nil, nil, role.GuildID, role.ID), func(v struct{}) (struct{}, error) {
		c.UncacheRole(role.GuildID, role.ID)
		return v, nil
	})
	return action.Precheck(func() error {
		if err := errors.Join(
			checks.Check(!role.IsPublicRole(), "Cannot delete the public role"),
			checks.Check(!role.Managed, "Cannot delete a managed role"),
		); err != nil {
			return err
		}
		if err := c.checkGuildPermissions(role.GuildID, discord.PermissionManageRoles); err != nil {
			return err
		}
		return c.checkRoleHierarchy(role)
	})
}
