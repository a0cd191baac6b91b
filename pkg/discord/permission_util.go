package discord

import (
	"time"
)

// timeoutPermissions is all a timed out member keeps.
var timeoutPermissions = PermissionsOf(PermissionViewChannel, PermissionMessageHistory)

// EffectivePermissions resolves the guild level permissions of member.
// The owner and administrators get PermissionsAll.
func EffectivePermissions(guild Guild, member Member) Permissions {
	if member.IsOwner(guild) {
		return PermissionsAll
	}
	perms := basePermissions(guild, member)
	if perms.Has(PermissionAdministrator) {
		return PermissionsAll
	}
	if member.TimedOut(time.Now()) {
		perms &= timeoutPermissions
	}
	return perms
}

// EffectiveChannelPermissions resolves member's permissions in container. Overrides apply in
// order: @everyone, the union of the member's roles, then the member itself. A member who
// cannot view the channel has no permissions in it.
func EffectiveChannelPermissions(guild Guild, member Member, container PermissionContainer) Permissions {
	if member.IsOwner(guild) {
		return PermissionsAll
	}
	perms := basePermissions(guild, member)
	if perms.Has(PermissionAdministrator) {
		return PermissionsAll
	}
	perms = applyOverrides(perms, guild, member, container)
	if !perms.Has(PermissionViewChannel) {
		return PermissionsNone
	}
	if _, ok := container.(AudioChannel); ok && !perms.Has(PermissionVoiceConnect) {
		perms &^= PermissionsVoice
	}
	if member.TimedOut(time.Now()) {
		perms &= timeoutPermissions
	}
	return perms
}

// ExplicitChannelPermissions is the override result without the owner, administrator or
// visibility shortcuts.
func ExplicitChannelPermissions(guild Guild, member Member, container PermissionContainer) Permissions {
	return applyOverrides(basePermissions(guild, member), guild, member, container)
}

func basePermissions(guild Guild, member Member) Permissions {
	var perms Permissions
	if public, ok := guild.PublicRole(); ok {
		perms = public.Permissions
	}
	for _, r := range guild.MemberRoles(member) {
		perms |= r.Permissions
	}
	return perms
}

func applyOverrides(perms Permissions, guild Guild, member Member, container PermissionContainer) Permissions {
	if o, ok := container.PermissionOverrideFor(guild.ID); ok {
		perms = perms&^o.Deny | o.Allow
	}
	var allow, deny Permissions
	for _, o := range container.PermissionOverrides() {
		if o.IsRoleOverride() && o.ID != guild.ID && member.HasRole(o.ID) {
			allow |= o.Allow
			deny |= o.Deny
		}
	}
	perms = perms&^deny | allow
	if o, ok := container.PermissionOverrideFor(member.User.ID); ok && o.IsMemberOverride() {
		perms = perms&^o.Deny | o.Allow
	}
	return perms
}

// CanInteract reports whether issuer can act on target (kick, ban, edit roles). The owner can
// interact with everyone, nobody can interact with the owner, otherwise the highest roles decide.
func CanInteract(guild Guild, issuer, target Member) bool {
	if issuer.IsOwner(guild) {
		return true
	}
	if target.IsOwner(guild) {
		return false
	}
	issuerTop, ok1 := guild.HighestRole(issuer)
	targetTop, ok2 := guild.HighestRole(target)
	if !ok1 || !ok2 {
		return false
	}
	return issuerTop.CanInteract(targetTop)
}

// CanInteractRole reports whether issuer can modify or assign role.
func CanInteractRole(guild Guild, issuer Member, role Role) bool {
	if issuer.IsOwner(guild) {
		return true
	}
	top, ok := guild.HighestRole(issuer)
	return ok && top.CanInteract(role)
}
