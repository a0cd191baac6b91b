package discord

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Member is a user's membership in one guild.
type Member struct {
	GuildID                    snowflake.ID   `json:"guild_id"`
	User                       User           `json:"user"`
	Nick                       string         `json:"nick,omitempty"`
	Avatar                     string         `json:"avatar,omitempty"`
	RoleIDs                    []snowflake.ID `json:"roles"`
	JoinedAt                   time.Time      `json:"joined_at"`
	PremiumSince               *time.Time     `json:"premium_since,omitempty"`
	Deaf                       bool           `json:"deaf,omitempty"`
	Mute                       bool           `json:"mute,omitempty"`
	Pending                    bool           `json:"pending,omitempty"`
	CommunicationDisabledUntil *time.Time     `json:"communication_disabled_until,omitempty"`
}

func (m Member) AsMention() string { return UserMention(m.User.ID) }

// ID is the member's user ID.
func (m Member) ID() snowflake.ID { return m.User.ID }

// EffectiveName is the nickname, falling back to the user's effective name.
func (m Member) EffectiveName() string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.EffectiveName()
}

// IsOwner reports whether the member owns guild.
func (m Member) IsOwner(guild Guild) bool { return guild.OwnerID == m.User.ID }

// IsBoosting reports whether the member currently boosts the guild.
func (m Member) IsBoosting() bool { return m.PremiumSince != nil }

// TimedOut reports whether the member is in timeout at now.
func (m Member) TimedOut(now time.Time) bool {
	return m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}

// HasRole reports whether the member has the role with id.
func (m Member) HasRole(id snowflake.ID) bool {
	for _, r := range m.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}

// AvatarURL returns the guild-specific avatar, or "" when the member has none.
func (m Member) AvatarURL() string {
	if m.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("%s/guilds/%s/users/%s/avatars/%s.%s", CDNURL, m.GuildID, m.User.ID, m.Avatar, hashExtension(m.Avatar))
}

// EffectiveAvatarURL prefers the guild avatar over the user's.
func (m Member) EffectiveAvatarURL() string {
	if url := m.AvatarURL(); url != "" {
		return url
	}
	return m.User.EffectiveAvatarURL()
}
