package discord

// ChannelType is the raw type of a channel.
type ChannelType int

const (
	ChannelTypeUnknown            ChannelType = -1
	ChannelTypeText               ChannelType = 0
	ChannelTypePrivate            ChannelType = 1
	ChannelTypeVoice              ChannelType = 2
	ChannelTypeGroup              ChannelType = 3
	ChannelTypeCategory           ChannelType = 4
	ChannelTypeNews               ChannelType = 5
	ChannelTypeGuildNewsThread    ChannelType = 10
	ChannelTypeGuildPublicThread  ChannelType = 11
	ChannelTypeGuildPrivateThread ChannelType = 12
	ChannelTypeStage              ChannelType = 13
	ChannelTypeForum              ChannelType = 15
	ChannelTypeMedia              ChannelType = 16
)

type channelTypeInfo struct {
	name       string
	sortBucket int
	guild      bool
}

var channelTypeInfos = map[ChannelType]channelTypeInfo{
	ChannelTypeText:               {"TEXT", 0, true},
	ChannelTypePrivate:            {"PRIVATE", -1, false},
	ChannelTypeVoice:              {"VOICE", 2, true},
	ChannelTypeGroup:              {"GROUP", -1, false},
	ChannelTypeCategory:           {"CATEGORY", 4, true},
	ChannelTypeNews:               {"NEWS", 0, true},
	ChannelTypeGuildNewsThread:    {"GUILD_NEWS_THREAD", -1, true},
	ChannelTypeGuildPublicThread:  {"GUILD_PUBLIC_THREAD", -1, true},
	ChannelTypeGuildPrivateThread: {"GUILD_PRIVATE_THREAD", -1, true},
	ChannelTypeStage:              {"STAGE", 2, true},
	ChannelTypeForum:              {"FORUM", 0, true},
	ChannelTypeMedia:              {"MEDIA", 0, true},
}

// ChannelTypeFromKey maps a raw channel type to its constant, or ChannelTypeUnknown.
func ChannelTypeFromKey(key int) ChannelType {
	if _, ok := channelTypeInfos[ChannelType(key)]; ok {
		return ChannelType(key)
	}
	return ChannelTypeUnknown
}

// Key returns the raw API value.
func (t ChannelType) Key() int { return int(t) }

func (t ChannelType) String() string {
	if info, ok := channelTypeInfos[t]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// SortBucket groups channel types the way the client sorts its channel list. Types that are
// never listed return -1.
func (t ChannelType) SortBucket() int {
	if info, ok := channelTypeInfos[t]; ok {
		return info.sortBucket
	}
	return -1
}

// IsGuild reports whether channels of this type belong to a guild.
func (t ChannelType) IsGuild() bool { return channelTypeInfos[t].guild }

// IsThread reports whether this is one of the thread types.
func (t ChannelType) IsThread() bool {
	switch t {
	case ChannelTypeGuildNewsThread, ChannelTypeGuildPublicThread, ChannelTypeGuildPrivateThread:
		return true
	}
	return false
}

// IsAudio reports whether members can connect to channels of this type.
func (t ChannelType) IsAudio() bool {
	return t == ChannelTypeVoice || t == ChannelTypeStage
}

// IsMessage reports whether messages can be sent to channels of this type.
func (t ChannelType) IsMessage() bool {
	switch t {
	case ChannelTypeText, ChannelTypeNews, ChannelTypeVoice, ChannelTypeStage, ChannelTypePrivate, ChannelTypeGroup:
		return true
	}
	return t.IsThread()
}

func (t *ChannelType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, ChannelTypeFromKey)
	return
}
