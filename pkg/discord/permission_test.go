package discord

import (
	"testing"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
)

func TestPermissionsBitset(t *testing.T) {
	p := PermissionsOf(PermissionViewChannel, PermissionMessageSend)
	assert.Assert(t, p.Has(PermissionViewChannel, PermissionMessageSend))
	assert.Assert(t, !p.Has(PermissionAdministrator))
	p = p.Add(PermissionAdministrator).Remove(PermissionMessageSend)
	assert.DeepEqual(t, p.Slice(), []Permission{PermissionAdministrator, PermissionViewChannel})
	assert.Equal(t, PermissionManageRoles.Raw(), Permissions(1<<28))
	assert.DeepEqual(t, PermissionsFromRaw(1<<47).Slice(), []Permission{})
	assert.Assert(t, PermissionsAll.HasAll(PermissionsText|PermissionsVoice))
	assert.Assert(t, !PermissionsChannel.Has(PermissionAdministrator))
	assert.Assert(t, PermissionManageRoles.IsGuild() && PermissionManageRoles.IsChannel())
}

func TestPermissionsJSON(t *testing.T) {
	raw, err := json.Marshal(PermissionsOf(PermissionAdministrator))
	assert.NilError(t, err)
	assert.Equal(t, string(raw), `"8"`)

	var p Permissions
	assert.NilError(t, json.Unmarshal([]byte(`"2048"`), &p))
	assert.Equal(t, p, PermissionsOf(PermissionMessageSend))
	assert.NilError(t, json.Unmarshal([]byte(`1024`), &p))
	assert.Equal(t, p, PermissionsOf(PermissionViewChannel))
}

func permissionGuild() Guild {
	g := Guild{
		ID:      1,
		OwnerID: 100,
		Roles: []Role{
			{ID: 1, Position: 0, Permissions: PermissionsOf(PermissionViewChannel, PermissionMessageSend, PermissionMessageHistory)},
			{ID: 2, Position: 1, Permissions: PermissionsOf(PermissionMessageManage)},
			{ID: 3, Position: 2, Permissions: PermissionsOf(PermissionAdministrator)},
			{ID: 4, Position: 3, Permissions: PermissionsOf(PermissionVoiceConnect)},
		},
	}
	g.Normalize()
	return g
}

func textChannel(overrides ...PermissionOverride) TextChannel {
	return ChannelFromPayload(&ChannelPayload{ID: 50, Type: ChannelTypeText, GuildID: 1, PermissionOverwrites: overrides}).(TextChannel)
}

func TestEffectivePermissions(t *testing.T) {
	g := permissionGuild()

	owner := Member{User: User{ID: 100}}
	assert.Equal(t, EffectivePermissions(g, owner), PermissionsAll)

	admin := Member{User: User{ID: 101}, RoleIDs: []snowflake.ID{3}}
	assert.Equal(t, EffectivePermissions(g, admin), PermissionsAll)

	mod := Member{User: User{ID: 102}, RoleIDs: []snowflake.ID{2}}
	perms := EffectivePermissions(g, mod)
	assert.Assert(t, perms.Has(PermissionMessageManage, PermissionMessageSend))
	assert.Assert(t, !perms.Has(PermissionAdministrator))

	until := time.Now().Add(time.Hour)
	timedOut := Member{User: User{ID: 103}, RoleIDs: []snowflake.ID{2}, CommunicationDisabledUntil: &until}
	assert.Equal(t, EffectivePermissions(g, timedOut), PermissionsOf(PermissionViewChannel, PermissionMessageHistory))
}

func TestEffectiveChannelPermissions(t *testing.T) {
	g := permissionGuild()
	member := Member{User: User{ID: 102}, RoleIDs: []snowflake.ID{2}}

	t.Run("no overrides", func(t *testing.T) {
		perms := EffectiveChannelPermissions(g, member, textChannel())
		assert.Assert(t, perms.Has(PermissionViewChannel, PermissionMessageSend, PermissionMessageManage))
	})

	t.Run("everyone deny, role allow", func(t *testing.T) {
		c := textChannel(
			PermissionOverride{ID: 1, Type: OverrideTypeRole, Deny: PermissionsOf(PermissionMessageSend)},
			PermissionOverride{ID: 2, Type: OverrideTypeRole, Allow: PermissionsOf(PermissionMessageSend)},
		)
		assert.Assert(t, EffectiveChannelPermissions(g, member, c).Has(PermissionMessageSend))
		plain := Member{User: User{ID: 104}}
		assert.Assert(t, !EffectiveChannelPermissions(g, plain, c).Has(PermissionMessageSend))
	})

	t.Run("member override wins", func(t *testing.T) {
		c := textChannel(
			PermissionOverride{ID: 2, Type: OverrideTypeRole, Allow: PermissionsOf(PermissionMessageSend)},
			PermissionOverride{ID: 102, Type: OverrideTypeMember, Deny: PermissionsOf(PermissionMessageSend)},
		)
		assert.Assert(t, !EffectiveChannelPermissions(g, member, c).Has(PermissionMessageSend))
	})

	t.Run("hidden channel", func(t *testing.T) {
		c := textChannel(PermissionOverride{ID: 1, Type: OverrideTypeRole, Deny: PermissionsOf(PermissionViewChannel)})
		assert.Equal(t, EffectiveChannelPermissions(g, member, c), PermissionsNone)
		assert.Assert(t, ExplicitChannelPermissions(g, member, c).Has(PermissionMessageSend))
	})

	t.Run("admin ignores overrides", func(t *testing.T) {
		admin := Member{User: User{ID: 101}, RoleIDs: []snowflake.ID{3}}
		c := textChannel(PermissionOverride{ID: 101, Type: OverrideTypeMember, Deny: PermissionsOf(PermissionViewChannel)})
		assert.Equal(t, EffectiveChannelPermissions(g, admin, c), PermissionsAll)
	})

	t.Run("voice without connect", func(t *testing.T) {
		voice := ChannelFromPayload(&ChannelPayload{ID: 51, Type: ChannelTypeVoice, GuildID: 1}).(VoiceChannel)
		perms := EffectiveChannelPermissions(g, member, voice)
		assert.Assert(t, !perms.Has(PermissionVoiceConnect))
		speaker := Member{User: User{ID: 105}, RoleIDs: []snowflake.ID{4}}
		assert.Assert(t, EffectiveChannelPermissions(g, speaker, voice).Has(PermissionVoiceConnect))
	})
}

func TestCanInteract(t *testing.T) {
	g := permissionGuild()
	owner := Member{User: User{ID: 100}}
	admin := Member{User: User{ID: 101}, RoleIDs: []snowflake.ID{3}}
	mod := Member{User: User{ID: 102}, RoleIDs: []snowflake.ID{2}}
	plain := Member{User: User{ID: 104}}

	assert.Assert(t, CanInteract(g, owner, admin))
	assert.Assert(t, !CanInteract(g, admin, owner))
	assert.Assert(t, CanInteract(g, admin, mod))
	assert.Assert(t, !CanInteract(g, mod, admin))
	assert.Assert(t, CanInteract(g, mod, plain))
	assert.Assert(t, !CanInteract(g, plain, plain))

	role4, _ := g.RoleByID(4)
	assert.Assert(t, !CanInteractRole(g, admin, role4))
	assert.Assert(t, CanInteractRole(g, owner, role4))
}
