package discord

import (
	"fmt"
	"slices"

	"github.com/disgoorg/snowflake/v2"
)

// GuildFeature is a feature flag string enabled on a guild.
type GuildFeature string

const (
	GuildFeatureAnimatedIcon   GuildFeature = "ANIMATED_ICON"
	GuildFeatureBanner         GuildFeature = "BANNER"
	GuildFeatureCommunity      GuildFeature = "COMMUNITY"
	GuildFeatureDiscoverable   GuildFeature = "DISCOVERABLE"
	GuildFeatureEnhancedColors GuildFeature = "ENHANCED_ROLE_COLORS"
	GuildFeatureInviteSplash   GuildFeature = "INVITE_SPLASH"
	GuildFeatureNews           GuildFeature = "NEWS"
	GuildFeaturePartnered      GuildFeature = "PARTNERED"
	GuildFeatureRoleIcons      GuildFeature = "ROLE_ICONS"
	GuildFeatureVanityURL      GuildFeature = "VANITY_URL"
	GuildFeatureVerified       GuildFeature = "VERIFIED"
)

// Guild is a server snapshot.
type Guild struct {
	ID                          snowflake.ID         `json:"id"`
	Name                        string               `json:"name"`
	Icon                        string               `json:"icon,omitempty"`
	Splash                      string               `json:"splash,omitempty"`
	Banner                      string               `json:"banner,omitempty"`
	Description                 string               `json:"description,omitempty"`
	OwnerID                     snowflake.ID         `json:"owner_id"`
	AFKChannelID                snowflake.ID         `json:"afk_channel_id,omitempty"`
	AFKTimeout                  int                  `json:"afk_timeout"`
	SystemChannelID             snowflake.ID         `json:"system_channel_id,omitempty"`
	RulesChannelID              snowflake.ID         `json:"rules_channel_id,omitempty"`
	VerificationLevel           VerificationLevel    `json:"verification_level"`
	DefaultMessageNotifications NotificationLevel    `json:"default_message_notifications"`
	ExplicitContentFilter       ExplicitContentLevel `json:"explicit_content_filter"`
	MFALevel                    MFALevel             `json:"mfa_level"`
	NSFWLevel                   NSFWLevel            `json:"nsfw_level"`
	PremiumTier                 BoostTier            `json:"premium_tier"`
	PremiumSubscriptionCount    int                  `json:"premium_subscription_count,omitempty"`
	PreferredLocale             string               `json:"preferred_locale"`
	VanityURLCode               string               `json:"vanity_url_code,omitempty"`
	Features                    []GuildFeature       `json:"features"`
	Roles                       []Role               `json:"roles"`
	Emojis                      []Emoji              `json:"emojis"`
	Stickers                    []Sticker            `json:"stickers,omitempty"`
	MaxMembers                  int                  `json:"max_members,omitempty"`
	ApproximateMemberCount      int                  `json:"approximate_member_count,omitempty"`
}

// Normalize fills in the guild ID of every role, which role payloads omit.
func (g *Guild) Normalize() {
	for i := range g.Roles {
		g.Roles[i].GuildID = g.ID
	}
}

// BoostTier is the guild's premium tier.
func (g Guild) BoostTier() BoostTier { return g.PremiumTier }

// HasFeature reports whether f is enabled.
func (g Guild) HasFeature(f GuildFeature) bool { return slices.Contains(g.Features, f) }

// IsOwner reports whether the user with id owns the guild.
func (g Guild) IsOwner(id snowflake.ID) bool { return g.OwnerID == id }

// PublicRole returns the @everyone role.
func (g Guild) PublicRole() (Role, bool) { return g.RoleByID(g.ID) }

// RoleByID looks up one of the guild's roles.
func (g Guild) RoleByID(id snowflake.ID) (Role, bool) {
	for _, r := range g.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// EmojiByID looks up one of the guild's custom emojis.
func (g Guild) EmojiByID(id snowflake.ID) (Emoji, bool) {
	for _, e := range g.Emojis {
		if e.ID == id {
			return e, true
		}
	}
	return Emoji{}, false
}

// MemberRoles resolves the roles of m, highest first. The public role is not included.
func (g Guild) MemberRoles(m Member) []Role {
	roles := make([]Role, 0, len(m.RoleIDs))
	for _, id := range m.RoleIDs {
		if r, ok := g.RoleByID(id); ok && !r.IsPublicRole() {
			roles = append(roles, r)
		}
	}
	slices.SortFunc(roles, func(a, b Role) int { return b.Compare(a) })
	return roles
}

// HighestRole returns the top role of m, or the public role when m has none.
func (g Guild) HighestRole(m Member) (Role, bool) {
	if roles := g.MemberRoles(m); len(roles) > 0 {
		return roles[0], true
	}
	return g.PublicRole()
}

// IconURL returns the guild icon, or "" when the guild has none.
func (g Guild) IconURL() string {
	if g.Icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/icons/%s/%s.%s", CDNURL, g.ID, g.Icon, hashExtension(g.Icon))
}

// SplashURL returns the invite splash, or "" when the guild has none.
func (g Guild) SplashURL() string {
	if g.Splash == "" {
		return ""
	}
	return fmt.Sprintf("%s/splashes/%s/%s.png", CDNURL, g.ID, g.Splash)
}

// MaxEmojis is the per-kind custom emoji limit. Partnered and verified guilds get the top tier.
func (g Guild) MaxEmojis() int {
	if g.HasFeature(GuildFeaturePartnered) || g.HasFeature(GuildFeatureVerified) {
		return BoostTier3.MaxEmojis()
	}
	return g.PremiumTier.MaxEmojis()
}

// MaxBitrate is the voice bitrate limit. VIP guilds are capped at tier 3.
func (g Guild) MaxBitrate() int {
	if g.HasFeature("VIP_REGIONS") {
		return BoostTier3.MaxBitrate()
	}
	return g.PremiumTier.MaxBitrate()
}
