package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// UserFlags is the bitset of public badges on a user.
type UserFlags int

const (
	UserFlagStaff               UserFlags = 1 << 0
	UserFlagPartner             UserFlags = 1 << 1
	UserFlagHypeSquad           UserFlags = 1 << 2
	UserFlagBugHunterLevel1     UserFlags = 1 << 3
	UserFlagHypeSquadBravery    UserFlags = 1 << 6
	UserFlagHypeSquadBrilliance UserFlags = 1 << 7
	UserFlagHypeSquadBalance    UserFlags = 1 << 8
	UserFlagEarlySupporter      UserFlags = 1 << 9
	UserFlagTeamUser            UserFlags = 1 << 10
	UserFlagBugHunterLevel2     UserFlags = 1 << 14
	UserFlagVerifiedBot         UserFlags = 1 << 16
	UserFlagVerifiedDeveloper   UserFlags = 1 << 17
	UserFlagCertifiedModerator  UserFlags = 1 << 18
	UserFlagBotHTTPInteractions UserFlags = 1 << 19
	UserFlagActiveDeveloper     UserFlags = 1 << 22
	UserFlagsNone               UserFlags = 0
)

// Has reports whether every flag in other is set.
func (f UserFlags) Has(other UserFlags) bool { return f&other == other }

// User is a Discord account.
type User struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator"`
	GlobalName    string       `json:"global_name,omitempty"`
	Avatar        string       `json:"avatar,omitempty"`
	Banner        string       `json:"banner,omitempty"`
	AccentColor   *int         `json:"accent_color,omitempty"`
	Bot           bool         `json:"bot,omitempty"`
	System        bool         `json:"system,omitempty"`
	PublicFlags   UserFlags    `json:"public_flags,omitempty"`
}

func (u User) AsMention() string { return UserMention(u.ID) }

// CreatedAt returns the account creation time.
func (u User) CreatedAt() time.Time { return u.ID.Time() }

// EffectiveName is the display name when set, otherwise the username.
func (u User) EffectiveName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Tag is "name#1234" for legacy accounts and the bare username otherwise.
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" || u.Discriminator == "0000" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// AvatarURL returns the custom avatar, or "" when the user has none.
func (u User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", CDNURL, u.ID, u.Avatar, hashExtension(u.Avatar))
}

// DefaultAvatarURL returns the generated avatar every account falls back to.
func (u User) DefaultAvatarURL() string {
	var index uint64
	if d, err := strconv.Atoi(u.Discriminator); err == nil && d != 0 {
		index = uint64(d) % 5
	} else {
		index = (uint64(u.ID) >> 22) % 6
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", CDNURL, index)
}

// EffectiveAvatarURL is AvatarURL with DefaultAvatarURL as fallback.
func (u User) EffectiveAvatarURL() string {
	if url := u.AvatarURL(); url != "" {
		return url
	}
	return u.DefaultAvatarURL()
}

// hashExtension picks gif for animated asset hashes.
func hashExtension(hash string) string {
	if strings.HasPrefix(hash, "a_") {
		return "gif"
	}
	return "png"
}
