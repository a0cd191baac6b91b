package discord

import (
	"cmp"
	"fmt"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

// MaxRoleNameLength is the longest role name Discord accepts.
const MaxRoleNameLength = 100

// DefaultColorRaw is the raw value Discord uses for "no color".
const DefaultColorRaw = 0x1FFFFFFF

// Holographic style colors. Discord only accepts this exact triple.
const (
	HolographicPrimary   = 11127295
	HolographicSecondary = 16759788
	HolographicTertiary  = 16761760
)

// RoleColors is the color style of a role: solid, gradient or holographic.
// Unset slots hold DefaultColorRaw.
type RoleColors struct {
	Primary   int
	Secondary int
	Tertiary  int
}

// DefaultRoleColors has no color at all.
var DefaultRoleColors = RoleColors{DefaultColorRaw, DefaultColorRaw, DefaultColorRaw}

// SolidColors returns a single color style.
func SolidColors(primary int) RoleColors {
	return RoleColors{primary, DefaultColorRaw, DefaultColorRaw}
}

// GradientColors returns a two color gradient style.
func GradientColors(primary, secondary int) RoleColors {
	return RoleColors{primary, secondary, DefaultColorRaw}
}

// HolographicColors returns the holographic style.
func HolographicColors() RoleColors {
	return RoleColors{HolographicPrimary, HolographicSecondary, HolographicTertiary}
}

func (c RoleColors) IsDefault() bool {
	return c.Primary == DefaultColorRaw && c.Secondary == DefaultColorRaw && c.Tertiary == DefaultColorRaw
}

func (c RoleColors) IsSolid() bool {
	return c.Primary != DefaultColorRaw && c.Secondary == DefaultColorRaw && c.Tertiary == DefaultColorRaw
}

func (c RoleColors) IsGradient() bool {
	return c.Secondary != DefaultColorRaw && c.Tertiary == DefaultColorRaw
}

func (c RoleColors) IsHolographic() bool {
	return c.Tertiary != DefaultColorRaw
}

type roleColorsJSON struct {
	Primary   int  `json:"primary_color"`
	Secondary *int `json:"secondary_color"`
	Tertiary  *int `json:"tertiary_color"`
}

func (c RoleColors) MarshalJSON() ([]byte, error) {
	v := roleColorsJSON{Primary: c.Primary}
	if c.Primary == DefaultColorRaw {
		v.Primary = 0
	}
	if c.Secondary != DefaultColorRaw {
		v.Secondary = &c.Secondary
	}
	if c.Tertiary != DefaultColorRaw {
		v.Tertiary = &c.Tertiary
	}
	return json.Marshal(v)
}

func (c *RoleColors) UnmarshalJSON(data []byte) error {
	var v roleColorsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = roleColorsFromRaw(v.Primary, v.Secondary, v.Tertiary)
	return nil
}

func roleColorsFromRaw(primary int, secondary, tertiary *int) RoleColors {
	c := DefaultRoleColors
	if primary != 0 {
		c.Primary = primary
	}
	if secondary != nil {
		c.Secondary = *secondary
	}
	if tertiary != nil {
		c.Tertiary = *tertiary
	}
	return c
}

// RoleFlags is the bitset of role flags.
type RoleFlags int

const RoleFlagInPrompt RoleFlags = 1 << 0

// RoleTags describes managed roles. PremiumSubscriber marks the booster role and
// AvailableForPurchase marks subscription roles.
type RoleTags struct {
	BotID                 snowflake.ID `json:"bot_id,omitempty"`
	IntegrationID         snowflake.ID `json:"integration_id,omitempty"`
	SubscriptionListingID snowflake.ID `json:"subscription_listing_id,omitempty"`
	PremiumSubscriber     bool         `json:"-"`
	AvailableForPurchase  bool         `json:"-"`
	GuildConnections      bool         `json:"-"`
}

// IsBot reports whether the role belongs to a bot.
func (t RoleTags) IsBot() bool { return t.BotID != 0 }

// IsIntegration reports whether the role is managed by an integration.
func (t RoleTags) IsIntegration() bool { return t.IntegrationID != 0 }

// The boolean tags are sent as null-valued keys, so presence is what counts.
func (t *RoleTags) UnmarshalJSON(data []byte) error {
	type tags RoleTags
	var v tags
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, v.PremiumSubscriber = keys["premium_subscriber"]
	_, v.AvailableForPurchase = keys["available_for_purchase"]
	_, v.GuildConnections = keys["guild_connections"]
	*t = RoleTags(v)
	return nil
}

// Role is a guild role. GuildID is filled in by the client since role payloads do not carry it.
type Role struct {
	ID           snowflake.ID `json:"id"`
	GuildID      snowflake.ID `json:"guild_id,omitempty"`
	Name         string       `json:"name"`
	Colors       RoleColors   `json:"-"`
	Hoist        bool         `json:"hoist"`
	Icon         string       `json:"icon,omitempty"`
	UnicodeEmoji string       `json:"unicode_emoji,omitempty"`
	Position     int          `json:"position"`
	Permissions  Permissions  `json:"permissions"`
	Managed      bool         `json:"managed"`
	Mentionable  bool         `json:"mentionable"`
	Tags         *RoleTags    `json:"tags,omitempty"`
	Flags        RoleFlags    `json:"flags,omitempty"`
}

// UnmarshalJSON accepts both the legacy color field and the colors object. colors wins.
func (r *Role) UnmarshalJSON(data []byte) error {
	type role Role
	var v struct {
		role
		Color  int             `json:"color"`
		Colors *roleColorsJSON `json:"colors"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Role(v.role)
	if v.Colors != nil {
		r.Colors = roleColorsFromRaw(v.Colors.Primary, v.Colors.Secondary, v.Colors.Tertiary)
	} else {
		r.Colors = roleColorsFromRaw(v.Color, nil, nil)
	}
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	type role Role
	color := r.Colors.Primary
	if color == DefaultColorRaw {
		color = 0
	}
	return json.Marshal(struct {
		role
		Color  int        `json:"color"`
		Colors RoleColors `json:"colors"`
	}{role(r), color, r.Colors})
}

func (r Role) AsMention() string {
	if r.IsPublicRole() {
		return "@everyone"
	}
	return RoleMention(r.ID)
}

// IsPublicRole reports whether r is the @everyone role, which shares the guild's ID.
func (r Role) IsPublicRole() bool { return r.ID == r.GuildID }

// IsBoosterRole reports whether r is the guild's booster role.
func (r Role) IsBoosterRole() bool { return r.Tags != nil && r.Tags.PremiumSubscriber }

// IconURL returns the role icon, or "" when the role uses no custom icon.
func (r Role) IconURL() string {
	if r.Icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/role-icons/%s/%s.png", CDNURL, r.ID, r.Icon)
}

// Compare orders roles by hierarchy. On equal positions the older role (lower ID) ranks higher.
func (r Role) Compare(other Role) int {
	if c := cmp.Compare(r.Position, other.Position); c != 0 {
		return c
	}
	return cmp.Compare(other.ID, r.ID)
}

// CanInteract reports whether r ranks strictly above other.
func (r Role) CanInteract(other Role) bool {
	return r.GuildID == other.GuildID && r.Compare(other) > 0
}
