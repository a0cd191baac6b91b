package discord

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/disgoorg/json"
)

// Permission is a single permission, keyed by its bit offset.
type Permission int

const PermissionUnknown Permission = -1

const (
	PermissionCreateInstantInvite Permission = iota
	PermissionKickMembers
	PermissionBanMembers
	PermissionAdministrator
	PermissionManageChannel
	PermissionManageServer
	PermissionMessageAddReaction
	PermissionViewAuditLogs
	PermissionPrioritySpeaker
	PermissionVoiceStream
	PermissionViewChannel
	PermissionMessageSend
	PermissionMessageTTS
	PermissionMessageManage
	PermissionMessageEmbedLinks
	PermissionMessageAttachFiles
	PermissionMessageHistory
	PermissionMessageMentionEveryone
	PermissionMessageExtEmoji
	PermissionViewGuildInsights
	PermissionVoiceConnect
	PermissionVoiceSpeak
	PermissionVoiceMuteOthers
	PermissionVoiceDeafOthers
	PermissionVoiceMoveOthers
	PermissionVoiceUseVAD
	PermissionNicknameChange
	PermissionNicknameManage
	PermissionManageRoles
	PermissionManageWebhooks
	PermissionManageGuildExpressions
	PermissionUseApplicationCommands
	PermissionRequestToSpeak
	PermissionManageEvents
	PermissionManageThreads
	PermissionCreatePublicThreads
	PermissionCreatePrivateThreads
	PermissionMessageExtSticker
	PermissionMessageSendInThreads
	PermissionUseEmbeddedActivities
	PermissionModerateMembers
	PermissionViewCreatorMonetizationAnalytics
	PermissionVoiceUseSoundboard
	PermissionCreateGuildExpressions
	PermissionCreateScheduledEvents
	PermissionVoiceUseExternalSounds
	PermissionMessageSendVoice
)

const (
	PermissionMessageSendPolls        Permission = 49
	PermissionUseExternalApplications Permission = 50
)

type permissionInfo struct {
	name    string
	guild   bool
	channel bool
}

var permissionInfos = map[Permission]permissionInfo{
	PermissionCreateInstantInvite:              {"Create Instant Invite", true, true},
	PermissionKickMembers:                      {"Kick Members", true, false},
	PermissionBanMembers:                       {"Ban Members", true, false},
	PermissionAdministrator:                    {"Administrator", true, false},
	PermissionManageChannel:                    {"Manage Channels", true, true},
	PermissionManageServer:                     {"Manage Server", true, false},
	PermissionMessageAddReaction:               {"Add Reactions", true, true},
	PermissionViewAuditLogs:                    {"View Audit Logs", true, false},
	PermissionPrioritySpeaker:                  {"Priority Speaker", true, true},
	PermissionVoiceStream:                      {"Video", true, true},
	PermissionViewChannel:                      {"View Channel", true, true},
	PermissionMessageSend:                      {"Send Messages", true, true},
	PermissionMessageTTS:                       {"Send TTS Messages", true, true},
	PermissionMessageManage:                    {"Manage Messages", true, true},
	PermissionMessageEmbedLinks:                {"Embed Links", true, true},
	PermissionMessageAttachFiles:               {"Attach Files", true, true},
	PermissionMessageHistory:                   {"Read Message History", true, true},
	PermissionMessageMentionEveryone:           {"Mention Everyone", true, true},
	PermissionMessageExtEmoji:                  {"Use External Emojis", true, true},
	PermissionViewGuildInsights:                {"View Server Insights", true, false},
	PermissionVoiceConnect:                     {"Connect", true, true},
	PermissionVoiceSpeak:                       {"Speak", true, true},
	PermissionVoiceMuteOthers:                  {"Mute Members", true, true},
	PermissionVoiceDeafOthers:                  {"Deafen Members", true, true},
	PermissionVoiceMoveOthers:                  {"Move Members", true, true},
	PermissionVoiceUseVAD:                      {"Use Voice Activity", true, true},
	PermissionNicknameChange:                   {"Change Nickname", true, false},
	PermissionNicknameManage:                   {"Manage Nicknames", true, false},
	PermissionManageRoles:                      {"Manage Roles", true, true},
	PermissionManageWebhooks:                   {"Manage Webhooks", true, true},
	PermissionManageGuildExpressions:           {"Manage Expressions", true, false},
	PermissionUseApplicationCommands:           {"Use Application Commands", true, true},
	PermissionRequestToSpeak:                   {"Request to Speak", true, true},
	PermissionManageEvents:                     {"Manage Events", true, true},
	PermissionManageThreads:                    {"Manage Threads", true, true},
	PermissionCreatePublicThreads:              {"Create Public Threads", true, true},
	PermissionCreatePrivateThreads:             {"Create Private Threads", true, true},
	PermissionMessageExtSticker:                {"Use External Stickers", true, true},
	PermissionMessageSendInThreads:             {"Send Messages in Threads", true, true},
	PermissionUseEmbeddedActivities:            {"Use Activities", true, true},
	PermissionModerateMembers:                  {"Timeout Members", true, false},
	PermissionViewCreatorMonetizationAnalytics: {"View Creator Analytics", true, false},
	PermissionVoiceUseSoundboard:               {"Use Soundboard", true, true},
	PermissionCreateGuildExpressions:           {"Create Expressions", true, false},
	PermissionCreateScheduledEvents:            {"Create Events", true, true},
	PermissionVoiceUseExternalSounds:           {"Use External Sounds", true, true},
	PermissionMessageSendVoice:                 {"Send Voice Messages", true, true},
	PermissionMessageSendPolls:                 {"Create Polls", true, true},
	PermissionUseExternalApplications:          {"Use External Apps", true, true},
}

// PermissionFromKey maps a bit offset to its Permission, or PermissionUnknown.
func PermissionFromKey(offset int) Permission {
	if _, ok := permissionInfos[Permission(offset)]; ok {
		return Permission(offset)
	}
	return PermissionUnknown
}

// Key returns the bit offset.
func (p Permission) Key() int { return int(p) }

// Offset is the same as Key.
func (p Permission) Offset() int { return int(p) }

// Raw returns the permission as a bitset, or 0 for PermissionUnknown.
func (p Permission) Raw() Permissions {
	if p == PermissionUnknown {
		return 0
	}
	return 1 << uint(p)
}

// Name returns the name shown in the Discord client.
func (p Permission) Name() string {
	if info, ok := permissionInfos[p]; ok {
		return info.name
	}
	return "Unknown"
}

// IsGuild reports whether the permission can be granted to a role.
func (p Permission) IsGuild() bool { return permissionInfos[p].guild }

// IsChannel reports whether the permission can be set in a channel override.
func (p Permission) IsChannel() bool { return permissionInfos[p].channel }

func (p Permission) String() string { return p.Name() }

// Permissions is a permission bitset. On the wire it is a decimal string.
type Permissions uint64

const (
	PermissionsNone Permissions = 0
)

var (
	// PermissionsAll has every known permission.
	PermissionsAll = func() Permissions {
		var all Permissions
		for p := range permissionInfos {
			all |= p.Raw()
		}
		return all
	}()

	// PermissionsChannel has every permission valid in a channel override.
	PermissionsChannel = func() Permissions {
		var all Permissions
		for p, info := range permissionInfos {
			if info.channel {
				all |= p.Raw()
			}
		}
		return all
	}()

	// PermissionsText holds the permissions that only make sense in text channels.
	PermissionsText = PermissionsOf(
		PermissionMessageAddReaction, PermissionMessageSend, PermissionMessageTTS,
		PermissionMessageManage, PermissionMessageEmbedLinks, PermissionMessageAttachFiles,
		PermissionMessageExtEmoji, PermissionMessageExtSticker, PermissionMessageHistory,
		PermissionMessageMentionEveryone, PermissionUseApplicationCommands, PermissionManageThreads,
		PermissionCreatePublicThreads, PermissionCreatePrivateThreads, PermissionMessageSendInThreads,
		PermissionMessageSendVoice, PermissionMessageSendPolls, PermissionUseExternalApplications,
	)

	// PermissionsVoice holds the permissions that only make sense in audio channels.
	PermissionsVoice = PermissionsOf(
		PermissionVoiceStream, PermissionVoiceConnect, PermissionVoiceSpeak,
		PermissionVoiceMuteOthers, PermissionVoiceDeafOthers, PermissionVoiceMoveOthers,
		PermissionVoiceUseVAD, PermissionPrioritySpeaker, PermissionRequestToSpeak,
		PermissionUseEmbeddedActivities, PermissionVoiceUseSoundboard, PermissionVoiceUseExternalSounds,
	)
)

// PermissionsOf combines perms into a bitset.
func PermissionsOf(perms ...Permission) Permissions {
	var raw Permissions
	for _, p := range perms {
		raw |= p.Raw()
	}
	return raw
}

// PermissionsFromRaw wraps a raw bitset.
func PermissionsFromRaw(raw uint64) Permissions {
	return Permissions(raw)
}

// Has reports whether every one of perms is set.
func (p Permissions) Has(perms ...Permission) bool {
	need := PermissionsOf(perms...)
	return p&need == need
}

// HasAll reports whether every bit of other is set.
func (p Permissions) HasAll(other Permissions) bool {
	return p&other == other
}

// Add returns p with perms set.
func (p Permissions) Add(perms ...Permission) Permissions {
	return p | PermissionsOf(perms...)
}

// Remove returns p with perms cleared.
func (p Permissions) Remove(perms ...Permission) Permissions {
	return p &^ PermissionsOf(perms...)
}

// Slice lists the known permissions set in p, by ascending offset.
func (p Permissions) Slice() []Permission {
	out := make([]Permission, 0, bits.OnesCount64(uint64(p)))
	for offset := 0; offset < 64; offset++ {
		if p&(1<<uint(offset)) == 0 {
			continue
		}
		if perm := PermissionFromKey(offset); perm != PermissionUnknown {
			out = append(out, perm)
		}
	}
	return out
}

func (p Permissions) String() string {
	names := make([]string, 0)
	for _, perm := range p.Slice() {
		names = append(names, perm.Name())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(p), 10))
}

func (p *Permissions) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint64
		if err2 := json.Unmarshal(data, &n); err2 != nil {
			return err
		}
		*p = Permissions(n)
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*p = Permissions(n)
	return nil
}
