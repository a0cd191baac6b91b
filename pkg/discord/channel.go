package discord

import (
	"fmt"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

// OverrideType tells role overrides from member overrides.
type OverrideType int

const (
	OverrideTypeUnknown OverrideType = iota - 1
	OverrideTypeRole
	OverrideTypeMember
)

var overrideTypeNames = map[OverrideType]string{
	OverrideTypeUnknown: "UNKNOWN",
	OverrideTypeRole:    "ROLE",
	OverrideTypeMember:  "MEMBER",
}

func OverrideTypeFromKey(key int) OverrideType {
	if t := OverrideType(key); isKnown(overrideTypeNames, t) {
		return t
	}
	return OverrideTypeUnknown
}

func (t OverrideType) Key() int       { return int(t) }
func (t OverrideType) String() string { return nameOf(overrideTypeNames, t) }

func (t *OverrideType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, OverrideTypeFromKey)
	return
}

// PermissionOverride adjusts the permissions of one role or member in one channel.
type PermissionOverride struct {
	ID        snowflake.ID `json:"id"`
	ChannelID snowflake.ID `json:"-"`
	Type      OverrideType `json:"type"`
	Allow     Permissions  `json:"allow"`
	Deny      Permissions  `json:"deny"`
}

func (o PermissionOverride) Allowed() Permissions { return o.Allow }
func (o PermissionOverride) Denied() Permissions  { return o.Deny }

// Inherit is every permission the override leaves untouched.
func (o PermissionOverride) Inherit() Permissions { return PermissionsAll &^ (o.Allow | o.Deny) }

func (o PermissionOverride) IsRoleOverride() bool   { return o.Type == OverrideTypeRole }
func (o PermissionOverride) IsMemberOverride() bool { return o.Type == OverrideTypeMember }

// ChannelFlags is the bitset of channel flags.
type ChannelFlags int

const (
	ChannelFlagPinned                   ChannelFlags = 1 << 1
	ChannelFlagRequireTag               ChannelFlags = 1 << 4
	ChannelFlagHideMediaDownloadOptions ChannelFlags = 1 << 15
)

// ForumTag is a tag that can be applied to forum posts.
type ForumTag struct {
	ID        snowflake.ID `json:"id,omitempty"`
	Name      string       `json:"name"`
	Moderated bool         `json:"moderated"`
	EmojiID   snowflake.ID `json:"emoji_id,omitempty"`
	EmojiName string       `json:"emoji_name,omitempty"`
}

// DefaultReaction is the reaction shown on new forum posts.
type DefaultReaction struct {
	EmojiID   snowflake.ID `json:"emoji_id,omitempty"`
	EmojiName string       `json:"emoji_name,omitempty"`
}

// ThreadMetadata holds the thread specific state of a thread channel.
type ThreadMetadata struct {
	Archived            bool       `json:"archived"`
	AutoArchiveDuration int        `json:"auto_archive_duration"`
	ArchiveTimestamp    time.Time  `json:"archive_timestamp"`
	Locked              bool       `json:"locked"`
	Invitable           *bool      `json:"invitable,omitempty"`
	CreateTimestamp     *time.Time `json:"create_timestamp,omitempty"`
}

// ChannelPayload is the wire form shared by every channel type. Concrete channel types are
// views over one payload.
type ChannelPayload struct {
	ID                            snowflake.ID         `json:"id"`
	Type                          ChannelType          `json:"type"`
	GuildID                       snowflake.ID         `json:"guild_id,omitempty"`
	Position                      int                  `json:"position,omitempty"`
	PermissionOverwrites          []PermissionOverride `json:"permission_overwrites,omitempty"`
	Name                          string               `json:"name,omitempty"`
	Topic                         string               `json:"topic,omitempty"`
	NSFW                          bool                 `json:"nsfw,omitempty"`
	LastMessageID                 snowflake.ID         `json:"last_message_id,omitempty"`
	Bitrate                       int                  `json:"bitrate,omitempty"`
	UserLimit                     int                  `json:"user_limit,omitempty"`
	RateLimitPerUser              int                  `json:"rate_limit_per_user,omitempty"`
	Recipients                    []User               `json:"recipients,omitempty"`
	Icon                          string               `json:"icon,omitempty"`
	OwnerID                       snowflake.ID         `json:"owner_id,omitempty"`
	ParentID                      snowflake.ID         `json:"parent_id,omitempty"`
	LastPinTimestamp              *time.Time           `json:"last_pin_timestamp,omitempty"`
	RTCRegion                     string               `json:"rtc_region,omitempty"`
	VideoQualityMode              int                  `json:"video_quality_mode,omitempty"`
	MessageCount                  int                  `json:"message_count,omitempty"`
	MemberCount                   int                  `json:"member_count,omitempty"`
	ThreadMetadata                *ThreadMetadata      `json:"thread_metadata,omitempty"`
	DefaultAutoArchiveDuration    int                  `json:"default_auto_archive_duration,omitempty"`
	Flags                         ChannelFlags         `json:"flags,omitempty"`
	AvailableTags                 []ForumTag           `json:"available_tags,omitempty"`
	AppliedTags                   []snowflake.ID       `json:"applied_tags,omitempty"`
	DefaultReactionEmoji          *DefaultReaction     `json:"default_reaction_emoji,omitempty"`
	DefaultThreadRateLimitPerUser int                  `json:"default_thread_rate_limit_per_user,omitempty"`
	DefaultSortOrder              *int                 `json:"default_sort_order,omitempty"`
	DefaultForumLayout            int                  `json:"default_forum_layout,omitempty"`
}

// Channel is implemented by every channel type.
type Channel interface {
	Mentionable
	ID() snowflake.ID
	Type() ChannelType
	Name() string
	CreatedAt() time.Time
	JumpURL() string
	Payload() *ChannelPayload
}

// GuildChannel is a channel that lives in a guild.
type GuildChannel interface {
	Channel
	GuildID() snowflake.ID
	Position() int
	ParentID() snowflake.ID
	IsNSFW() bool
}

// PermissionContainer is a guild channel that carries its own permission overrides.
// Threads are not containers; they use the overrides of their parent.
type PermissionContainer interface {
	GuildChannel
	PermissionOverrides() []PermissionOverride
	PermissionOverrideFor(id snowflake.ID) (PermissionOverride, bool)
}

// ThreadContainer is a channel that threads can be created in.
type ThreadContainer interface {
	GuildChannel
	DefaultThreadSlowmode() int
	DefaultAutoArchiveDuration() int
}

// MessageChannel is a channel that messages can be sent to.
type MessageChannel interface {
	Channel
	LastMessageID() snowflake.ID
	Slowmode() int
	LastPinTime() (time.Time, bool)
}

// AudioChannel is a channel members can connect to.
type AudioChannel interface {
	GuildChannel
	Bitrate() int
	UserLimit() int
	Region() string
}

// Copyable is a channel that can serve as the template of a new channel.
type Copyable interface {
	GuildChannel
	CopyTemplate() ChannelCreate
}

type channelCore struct{ p *ChannelPayload }

func (c channelCore) ID() snowflake.ID         { return c.p.ID }
func (c channelCore) Type() ChannelType        { return c.p.Type }
func (c channelCore) Name() string             { return c.p.Name }
func (c channelCore) CreatedAt() time.Time     { return c.p.ID.Time() }
func (c channelCore) AsMention() string        { return ChannelMention(c.p.ID) }
func (c channelCore) Payload() *ChannelPayload { return c.p }

func (c channelCore) JumpURL() string {
	guild := "@me"
	if c.p.GuildID != 0 {
		guild = c.p.GuildID.String()
	}
	return fmt.Sprintf("%s/channels/%s/%s", AppURL, guild, c.p.ID)
}

type guildCapability struct{ p *ChannelPayload }

func (c guildCapability) GuildID() snowflake.ID  { return c.p.GuildID }
func (c guildCapability) Position() int          { return c.p.Position }
func (c guildCapability) ParentID() snowflake.ID { return c.p.ParentID }
func (c guildCapability) IsNSFW() bool           { return c.p.NSFW }

type permissionCapability struct{ p *ChannelPayload }

func (c permissionCapability) PermissionOverrides() []PermissionOverride {
	return c.p.PermissionOverwrites
}

func (c permissionCapability) PermissionOverrideFor(id snowflake.ID) (PermissionOverride, bool) {
	for _, o := range c.p.PermissionOverwrites {
		if o.ID == id {
			return o, true
		}
	}
	return PermissionOverride{}, false
}

type threadContainerCapability struct{ p *ChannelPayload }

func (c threadContainerCapability) DefaultThreadSlowmode() int {
	return c.p.DefaultThreadRateLimitPerUser
}

func (c threadContainerCapability) DefaultAutoArchiveDuration() int {
	if c.p.DefaultAutoArchiveDuration == 0 {
		return 1440
	}
	return c.p.DefaultAutoArchiveDuration
}

type messageCapability struct{ p *ChannelPayload }

func (c messageCapability) LastMessageID() snowflake.ID { return c.p.LastMessageID }
func (c messageCapability) Slowmode() int               { return c.p.RateLimitPerUser }

func (c messageCapability) LastPinTime() (time.Time, bool) {
	if c.p.LastPinTimestamp == nil {
		return time.Time{}, false
	}
	return *c.p.LastPinTimestamp, true
}

type audioCapability struct{ p *ChannelPayload }

func (c audioCapability) Bitrate() int   { return c.p.Bitrate }
func (c audioCapability) UserLimit() int { return c.p.UserLimit }

// Region is the voice region override, "" for automatic.
func (c audioCapability) Region() string { return c.p.RTCRegion }

type topicCapability struct{ p *ChannelPayload }

func (c topicCapability) Topic() string { return c.p.Topic }

type TextChannel struct {
	channelCore
	guildCapability
	permissionCapability
	threadContainerCapability
	messageCapability
	topicCapability
}

func (c TextChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

// NewsChannel is an announcement channel whose messages can be followed by other guilds.
type NewsChannel struct {
	channelCore
	guildCapability
	permissionCapability
	threadContainerCapability
	messageCapability
	topicCapability
}

func (c NewsChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

type VoiceChannel struct {
	channelCore
	guildCapability
	permissionCapability
	messageCapability
	audioCapability
}

func (c VoiceChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

type StageChannel struct {
	channelCore
	guildCapability
	permissionCapability
	messageCapability
	audioCapability
	topicCapability
}

func (c StageChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

type Category struct {
	channelCore
	guildCapability
	permissionCapability
}

func (c Category) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

// ForumChannel only holds threads (posts).
type ForumChannel struct {
	channelCore
	guildCapability
	permissionCapability
	threadContainerCapability
	topicCapability
}

func (c ForumChannel) AvailableTags() []ForumTag { return c.Payload().AvailableTags }

func (c ForumChannel) DefaultReaction() (DefaultReaction, bool) {
	if c.Payload().DefaultReactionEmoji == nil {
		return DefaultReaction{}, false
	}
	return *c.Payload().DefaultReactionEmoji, true
}

// DefaultLayout is 0 when unset, 1 for list view and 2 for gallery view.
func (c ForumChannel) DefaultLayout() int { return c.Payload().DefaultForumLayout }

func (c ForumChannel) RequiresTag() bool { return c.Payload().Flags&ChannelFlagRequireTag != 0 }

func (c ForumChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

type MediaChannel struct {
	channelCore
	guildCapability
	permissionCapability
	threadContainerCapability
	topicCapability
}

func (c MediaChannel) AvailableTags() []ForumTag { return c.Payload().AvailableTags }

func (c MediaChannel) RequiresTag() bool { return c.Payload().Flags&ChannelFlagRequireTag != 0 }

func (c MediaChannel) IsMediaDownloadHidden() bool {
	return c.Payload().Flags&ChannelFlagHideMediaDownloadOptions != 0
}

func (c MediaChannel) CopyTemplate() ChannelCreate { return copyTemplate(c.Payload()) }

// ThreadChannel is a thread or forum post. ParentID is the channel it was started in.
type ThreadChannel struct {
	channelCore
	guildCapability
	messageCapability
}

func (c ThreadChannel) OwnerID() snowflake.ID { return c.Payload().OwnerID }
func (c ThreadChannel) MessageCount() int     { return c.Payload().MessageCount }
func (c ThreadChannel) MemberCount() int      { return c.Payload().MemberCount }
func (c ThreadChannel) IsPublic() bool        { return c.Payload().Type != ChannelTypeGuildPrivateThread }
func (c ThreadChannel) IsPinned() bool        { return c.Payload().Flags&ChannelFlagPinned != 0 }

func (c ThreadChannel) AppliedTags() []snowflake.ID { return c.Payload().AppliedTags }

func (c ThreadChannel) IsArchived() bool { return c.metadata().Archived }
func (c ThreadChannel) IsLocked() bool   { return c.metadata().Locked }

func (c ThreadChannel) AutoArchiveDuration() int { return c.metadata().AutoArchiveDuration }

func (c ThreadChannel) ArchiveTime() time.Time { return c.metadata().ArchiveTimestamp }

// IsInvitable reports whether non-moderators can add members. Only private threads use it.
func (c ThreadChannel) IsInvitable() bool {
	m := c.metadata()
	return m.Invitable == nil || *m.Invitable
}

func (c ThreadChannel) metadata() ThreadMetadata {
	if c.Payload().ThreadMetadata == nil {
		return ThreadMetadata{}
	}
	return *c.Payload().ThreadMetadata
}

// PrivateChannel is a direct message channel with one user.
type PrivateChannel struct {
	channelCore
	messageCapability
}

// Recipient is the other user of the conversation.
func (c PrivateChannel) Recipient() (User, bool) {
	if len(c.Payload().Recipients) == 0 {
		return User{}, false
	}
	return c.Payload().Recipients[0], true
}

// Name is the recipient's name since direct messages have none.
func (c PrivateChannel) Name() string {
	if u, ok := c.Recipient(); ok {
		return u.EffectiveName()
	}
	return c.Payload().Name
}

// GroupChannel is a group direct message.
type GroupChannel struct {
	channelCore
	messageCapability
}

func (c GroupChannel) Recipients() []User    { return c.Payload().Recipients }
func (c GroupChannel) OwnerID() snowflake.ID { return c.Payload().OwnerID }

func (c GroupChannel) IconURL() string {
	if c.Payload().Icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/channel-icons/%s/%s.png", CDNURL, c.Payload().ID, c.Payload().Icon)
}

// UnknownChannel is a channel of a type this package does not model.
type UnknownChannel struct {
	channelCore
}

// ChannelFromPayload wraps p in the view matching its type.
func ChannelFromPayload(p *ChannelPayload) Channel {
	for i := range p.PermissionOverwrites {
		p.PermissionOverwrites[i].ChannelID = p.ID
	}
	core := channelCore{p}
	guild := guildCapability{p}
	perms := permissionCapability{p}
	threads := threadContainerCapability{p}
	messages := messageCapability{p}
	audio := audioCapability{p}
	topic := topicCapability{p}
	switch p.Type {
	case ChannelTypeText:
		return TextChannel{core, guild, perms, threads, messages, topic}
	case ChannelTypeNews:
		return NewsChannel{core, guild, perms, threads, messages, topic}
	case ChannelTypeVoice:
		return VoiceChannel{core, guild, perms, messages, audio}
	case ChannelTypeStage:
		return StageChannel{core, guild, perms, messages, audio, topic}
	case ChannelTypeCategory:
		return Category{core, guild, perms}
	case ChannelTypeForum:
		return ForumChannel{core, guild, perms, threads, topic}
	case ChannelTypeMedia:
		return MediaChannel{core, guild, perms, threads, topic}
	case ChannelTypeGuildNewsThread, ChannelTypeGuildPublicThread, ChannelTypeGuildPrivateThread:
		return ThreadChannel{core, guild, messages}
	case ChannelTypePrivate:
		return PrivateChannel{core, messages}
	case ChannelTypeGroup:
		return GroupChannel{core, messages}
	default:
		return UnknownChannel{core}
	}
}

// UnmarshalChannel decodes a channel payload into its concrete type.
func UnmarshalChannel(data []byte) (Channel, error) {
	var p ChannelPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode channel: %w", err)
	}
	return ChannelFromPayload(&p), nil
}

// Channel setting limits.
const (
	MaxChannelNameLength  = 100
	MaxChannelTopicLength = 1024
	MaxForumTopicLength   = 4096
	MaxSlowmode           = 21600
	MinBitrate            = 8000
	MaxVoiceUserLimit     = 99
	MaxStageUserLimit     = 10000
)

// ChannelCreate is the payload of a create channel request.
type ChannelCreate struct {
	Name                          string               `json:"name"`
	Type                          ChannelType          `json:"type"`
	Topic                         string               `json:"topic,omitempty"`
	Bitrate                       int                  `json:"bitrate,omitempty"`
	UserLimit                     int                  `json:"user_limit,omitempty"`
	RateLimitPerUser              int                  `json:"rate_limit_per_user,omitempty"`
	Position                      *int                 `json:"position,omitempty"`
	PermissionOverwrites          []PermissionOverride `json:"permission_overwrites,omitempty"`
	ParentID                      snowflake.ID         `json:"parent_id,omitempty"`
	NSFW                          bool                 `json:"nsfw,omitempty"`
	RTCRegion                     string               `json:"rtc_region,omitempty"`
	VideoQualityMode              int                  `json:"video_quality_mode,omitempty"`
	DefaultAutoArchiveDuration    int                  `json:"default_auto_archive_duration,omitempty"`
	DefaultReactionEmoji          *DefaultReaction     `json:"default_reaction_emoji,omitempty"`
	AvailableTags                 []ForumTag           `json:"available_tags,omitempty"`
	DefaultSortOrder              *int                 `json:"default_sort_order,omitempty"`
	DefaultForumLayout            int                  `json:"default_forum_layout,omitempty"`
	DefaultThreadRateLimitPerUser int                  `json:"default_thread_rate_limit_per_user,omitempty"`
}

// copyTemplate copies the settings of p. Guild bound settings (parent and overrides) are
// included; callers creating the copy in another guild drop them.
func copyTemplate(p *ChannelPayload) ChannelCreate {
	c := ChannelCreate{
		Name:                          p.Name,
		Type:                          p.Type,
		Topic:                         p.Topic,
		Bitrate:                       p.Bitrate,
		UserLimit:                     p.UserLimit,
		RateLimitPerUser:              p.RateLimitPerUser,
		ParentID:                      p.ParentID,
		NSFW:                          p.NSFW,
		RTCRegion:                     p.RTCRegion,
		VideoQualityMode:              p.VideoQualityMode,
		DefaultAutoArchiveDuration:    p.DefaultAutoArchiveDuration,
		DefaultReactionEmoji:          p.DefaultReactionEmoji,
		DefaultSortOrder:              p.DefaultSortOrder,
		DefaultForumLayout:            p.DefaultForumLayout,
		DefaultThreadRateLimitPerUser: p.DefaultThreadRateLimitPerUser,
	}
	if len(p.PermissionOverwrites) > 0 {
		c.PermissionOverwrites = append([]PermissionOverride(nil), p.PermissionOverwrites...)
	}
	if len(p.AvailableTags) > 0 {
		c.AvailableTags = make([]ForumTag, len(p.AvailableTags))
		for i, t := range p.AvailableTags {
			t.ID = 0
			c.AvailableTags[i] = t
		}
	}
	return c
}
