package discord

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// MessageType is the kind of a message. System messages are generated by Discord.
type MessageType int

const (
	MessageTypeUnknown                    MessageType = -1
	MessageTypeDefault                    MessageType = 0
	MessageTypeRecipientAdd               MessageType = 1
	MessageTypeRecipientRemove            MessageType = 2
	MessageTypeCall                       MessageType = 3
	MessageTypeChannelNameChange          MessageType = 4
	MessageTypeChannelIconChange          MessageType = 5
	MessageTypeChannelPinnedAdd           MessageType = 6
	MessageTypeGuildMemberJoin            MessageType = 7
	MessageTypeGuildMemberBoost           MessageType = 8
	MessageTypeGuildBoostTier1            MessageType = 9
	MessageTypeGuildBoostTier2            MessageType = 10
	MessageTypeGuildBoostTier3            MessageType = 11
	MessageTypeChannelFollowAdd           MessageType = 12
	MessageTypeGuildDiscoveryDisqualified MessageType = 14
	MessageTypeGuildDiscoveryRequalified  MessageType = 15
	MessageTypeThreadCreated              MessageType = 18
	MessageTypeInlineReply                MessageType = 19
	MessageTypeSlashCommand               MessageType = 20
	MessageTypeThreadStarterMessage       MessageType = 21
	MessageTypeGuildInviteReminder        MessageType = 22
	MessageTypeContextCommand             MessageType = 23
	MessageTypeAutoModerationAction       MessageType = 24
	MessageTypeRoleSubscriptionPurchase   MessageType = 25
	MessageTypeStageStart                 MessageType = 27
	MessageTypeStageEnd                   MessageType = 28
	MessageTypeStageSpeaker               MessageType = 29
	MessageTypeStageTopic                 MessageType = 31
	MessageTypePollResult                 MessageType = 46
)

type messageTypeInfo struct {
	name      string
	system    bool
	deletable bool
}

var messageTypeInfos = map[MessageType]messageTypeInfo{
	MessageTypeUnknown:                    {"UNKNOWN", true, false},
	MessageTypeDefault:                    {"DEFAULT", false, true},
	MessageTypeRecipientAdd:               {"RECIPIENT_ADD", true, false},
	MessageTypeRecipientRemove:            {"RECIPIENT_REMOVE", true, false},
	MessageTypeCall:                       {"CALL", true, false},
	MessageTypeChannelNameChange:          {"CHANNEL_NAME_CHANGE", true, false},
	MessageTypeChannelIconChange:          {"CHANNEL_ICON_CHANGE", true, false},
	MessageTypeChannelPinnedAdd:           {"CHANNEL_PINNED_ADD", true, true},
	MessageTypeGuildMemberJoin:            {"GUILD_MEMBER_JOIN", true, true},
	MessageTypeGuildMemberBoost:           {"GUILD_MEMBER_BOOST", true, true},
	MessageTypeGuildBoostTier1:            {"GUILD_BOOST_TIER_1", true, true},
	MessageTypeGuildBoostTier2:            {"GUILD_BOOST_TIER_2", true, true},
	MessageTypeGuildBoostTier3:            {"GUILD_BOOST_TIER_3", true, true},
	MessageTypeChannelFollowAdd:           {"CHANNEL_FOLLOW_ADD", true, true},
	MessageTypeGuildDiscoveryDisqualified: {"GUILD_DISCOVERY_DISQUALIFIED", true, true},
	MessageTypeGuildDiscoveryRequalified:  {"GUILD_DISCOVERY_REQUALIFIED", true, true},
	MessageTypeThreadCreated:              {"THREAD_CREATED", true, true},
	MessageTypeInlineReply:                {"INLINE_REPLY", false, true},
	MessageTypeSlashCommand:               {"SLASH_COMMAND", false, true},
	MessageTypeThreadStarterMessage:       {"THREAD_STARTER_MESSAGE", false, false},
	MessageTypeGuildInviteReminder:        {"GUILD_INVITE_REMINDER", true, true},
	MessageTypeContextCommand:             {"CONTEXT_COMMAND", false, true},
	MessageTypeAutoModerationAction:       {"AUTO_MODERATION_ACTION", true, true},
	MessageTypeRoleSubscriptionPurchase:   {"ROLE_SUBSCRIPTION_PURCHASE", true, true},
	MessageTypeStageStart:                 {"STAGE_START", true, true},
	MessageTypeStageEnd:                   {"STAGE_END", true, true},
	MessageTypeStageSpeaker:               {"STAGE_SPEAKER", true, true},
	MessageTypeStageTopic:                 {"STAGE_TOPIC", true, true},
	MessageTypePollResult:                 {"POLL_RESULT", true, true},
}

func MessageTypeFromKey(key int) MessageType {
	if _, ok := messageTypeInfos[MessageType(key)]; ok {
		return MessageType(key)
	}
	return MessageTypeUnknown
}

func (t MessageType) Key() int { return int(t) }

func (t MessageType) String() string {
	return messageTypeInfos[MessageTypeFromKey(int(t))].name
}

// IsSystem reports whether messages of this type are generated by Discord.
func (t MessageType) IsSystem() bool { return messageTypeInfos[MessageTypeFromKey(int(t))].system }

// CanDelete reports whether messages of this type can be deleted at all.
func (t MessageType) CanDelete() bool {
	return messageTypeInfos[MessageTypeFromKey(int(t))].deletable
}

func (t *MessageType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, MessageTypeFromKey)
	return
}

// MessageFlags is the bitset of message flags.
type MessageFlags int

const (
	MessageFlagCrossposted              MessageFlags = 1 << 0
	MessageFlagIsCrosspost              MessageFlags = 1 << 1
	MessageFlagSuppressEmbeds           MessageFlags = 1 << 2
	MessageFlagSourceMessageDeleted     MessageFlags = 1 << 3
	MessageFlagUrgent                   MessageFlags = 1 << 4
	MessageFlagHasThread                MessageFlags = 1 << 5
	MessageFlagEphemeral                MessageFlags = 1 << 6
	MessageFlagLoading                  MessageFlags = 1 << 7
	MessageFlagFailedToMentionSomeRoles MessageFlags = 1 << 8
	MessageFlagSuppressNotifications    MessageFlags = 1 << 12
	MessageFlagIsVoiceMessage           MessageFlags = 1 << 13
	MessageFlagsNone                    MessageFlags = 0
)

// Has reports whether every flag in other is set.
func (f MessageFlags) Has(other MessageFlags) bool { return f&other == other }

// Add returns f with other set.
func (f MessageFlags) Add(other MessageFlags) MessageFlags { return f | other }

// Remove returns f with other cleared.
func (f MessageFlags) Remove(other MessageFlags) MessageFlags { return f &^ other }

const (
	MaxMessageContentLength = 2000
	MaxMessageEmbeds        = 10
	MaxMessageStickers      = 3
)

type Attachment struct {
	ID          snowflake.ID `json:"id"`
	Filename    string       `json:"filename"`
	Description string       `json:"description,omitempty"`
	ContentType string       `json:"content_type,omitempty"`
	Size        int          `json:"size"`
	URL         string       `json:"url"`
	ProxyURL    string       `json:"proxy_url"`
	Height      *int         `json:"height,omitempty"`
	Width       *int         `json:"width,omitempty"`
	Ephemeral   bool         `json:"ephemeral,omitempty"`
}

// IsImage reports whether the attachment has image dimensions.
func (a Attachment) IsImage() bool { return a.Width != nil && a.Height != nil }

type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}

// MessageReference points at the message a reply, crosspost or pin notice refers to.
type MessageReference struct {
	MessageID       snowflake.ID `json:"message_id,omitempty"`
	ChannelID       snowflake.ID `json:"channel_id,omitempty"`
	GuildID         snowflake.ID `json:"guild_id,omitempty"`
	FailIfNotExists *bool        `json:"fail_if_not_exists,omitempty"`
}

// Message is a message snapshot. Edits replace the whole snapshot.
type Message struct {
	ID                snowflake.ID      `json:"id"`
	ChannelID         snowflake.ID      `json:"channel_id"`
	GuildID           snowflake.ID      `json:"guild_id,omitempty"`
	Author            User              `json:"author"`
	Member            *Member           `json:"member,omitempty"`
	Content           string            `json:"content"`
	Timestamp         time.Time         `json:"timestamp"`
	EditedTimestamp   *time.Time        `json:"edited_timestamp,omitempty"`
	TTS               bool              `json:"tts"`
	MentionEveryone   bool              `json:"mention_everyone"`
	Mentions          []User            `json:"mentions"`
	MentionRoles      []snowflake.ID    `json:"mention_roles"`
	Attachments       []Attachment      `json:"attachments"`
	Embeds            []Embed           `json:"embeds"`
	Reactions         []Reaction        `json:"reactions,omitempty"`
	Pinned            bool              `json:"pinned"`
	WebhookID         snowflake.ID      `json:"webhook_id,omitempty"`
	Type              MessageType       `json:"type"`
	Flags             MessageFlags      `json:"flags,omitempty"`
	StickerItems      []StickerItem     `json:"sticker_items,omitempty"`
	MessageReference  *MessageReference `json:"message_reference,omitempty"`
	ReferencedMessage *Message          `json:"referenced_message,omitempty"`
}

// JumpURL links to the message in the Discord client.
func (m Message) JumpURL() string {
	guild := "@me"
	if m.GuildID != 0 {
		guild = m.GuildID.String()
	}
	return fmt.Sprintf("%s/channels/%s/%s/%s", AppURL, guild, m.ChannelID, m.ID)
}

func (m Message) IsEdited() bool       { return m.EditedTimestamp != nil }
func (m Message) IsWebhook() bool      { return m.WebhookID != 0 }
func (m Message) IsFromGuild() bool    { return m.GuildID != 0 }
func (m Message) IsEphemeral() bool    { return m.Flags.Has(MessageFlagEphemeral) }
func (m Message) CreatedAt() time.Time { return m.ID.Time() }

// TimeEdited returns the last edit time, or the creation time for unedited messages.
func (m Message) TimeEdited() time.Time {
	if m.EditedTimestamp == nil {
		return m.Timestamp
	}
	return *m.EditedTimestamp
}

// MentionsUser reports whether the message mentions the user with id.
func (m Message) MentionsUser(id snowflake.ID) bool {
	for _, u := range m.Mentions {
		if u.ID == id {
			return true
		}
	}
	return false
}

// AllowedMentions restricts which mentions in a message ping.
type AllowedMentions struct {
	Parse       []string       `json:"parse"`
	Roles       []snowflake.ID `json:"roles,omitempty"`
	Users       []snowflake.ID `json:"users,omitempty"`
	RepliedUser bool           `json:"replied_user,omitempty"`
}

// MessageCreate is the payload of a create message request.
type MessageCreate struct {
	Content          string            `json:"content,omitempty"`
	TTS              bool              `json:"tts,omitempty"`
	Embeds           []Embed           `json:"embeds,omitempty"`
	AllowedMentions  *AllowedMentions  `json:"allowed_mentions,omitempty"`
	MessageReference *MessageReference `json:"message_reference,omitempty"`
	StickerIDs       []snowflake.ID    `json:"sticker_ids,omitempty"`
	Flags            MessageFlags      `json:"flags,omitempty"`
	Nonce            string            `json:"nonce,omitempty"`
	EnforceNonce     bool              `json:"enforce_nonce,omitempty"`
}

// IsEmpty reports whether Discord would reject the payload with CANNOT_SEND_EMPTY_MESSAGE.
func (m MessageCreate) IsEmpty() bool {
	return m.Content == "" && len(m.Embeds) == 0 && len(m.StickerIDs) == 0
}
