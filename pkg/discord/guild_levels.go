package discord

// VerificationLevel is the verification a member needs before talking in a guild.
type VerificationLevel int

const (
	VerificationLevelUnknown VerificationLevel = iota - 1
	VerificationLevelNone
	VerificationLevelLow
	VerificationLevelMedium
	VerificationLevelHigh
	VerificationLevelVeryHigh
)

var verificationLevelNames = map[VerificationLevel]string{
	VerificationLevelUnknown:  "UNKNOWN",
	VerificationLevelNone:     "NONE",
	VerificationLevelLow:      "LOW",
	VerificationLevelMedium:   "MEDIUM",
	VerificationLevelHigh:     "HIGH",
	VerificationLevelVeryHigh: "VERY_HIGH",
}

func VerificationLevelFromKey(key int) VerificationLevel {
	if l := VerificationLevel(key); isKnown(verificationLevelNames, l) {
		return l
	}
	return VerificationLevelUnknown
}

func (l VerificationLevel) Key() int       { return int(l) }
func (l VerificationLevel) String() string { return nameOf(verificationLevelNames, l) }

func (l *VerificationLevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, VerificationLevelFromKey)
	return
}

// NotificationLevel is a guild's default message notification setting.
type NotificationLevel int

const (
	NotificationLevelUnknown NotificationLevel = iota - 1
	NotificationLevelAllMessages
	NotificationLevelMentionsOnly
)

var notificationLevelNames = map[NotificationLevel]string{
	NotificationLevelUnknown:      "UNKNOWN",
	NotificationLevelAllMessages:  "ALL_MESSAGES",
	NotificationLevelMentionsOnly: "MENTIONS_ONLY",
}

func NotificationLevelFromKey(key int) NotificationLevel {
	if l := NotificationLevel(key); isKnown(notificationLevelNames, l) {
		return l
	}
	return NotificationLevelUnknown
}

func (l NotificationLevel) Key() int       { return int(l) }
func (l NotificationLevel) String() string { return nameOf(notificationLevelNames, l) }

func (l *NotificationLevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, NotificationLevelFromKey)
	return
}

// ExplicitContentLevel is a guild's media scanning setting.
type ExplicitContentLevel int

const (
	ExplicitContentLevelUnknown ExplicitContentLevel = iota - 1
	ExplicitContentLevelOff
	ExplicitContentLevelNoRole
	ExplicitContentLevelAll
)

var explicitContentLevelNames = map[ExplicitContentLevel]string{
	ExplicitContentLevelUnknown: "UNKNOWN",
	ExplicitContentLevelOff:     "OFF",
	ExplicitContentLevelNoRole:  "NO_ROLE",
	ExplicitContentLevelAll:     "ALL",
}

func ExplicitContentLevelFromKey(key int) ExplicitContentLevel {
	if l := ExplicitContentLevel(key); isKnown(explicitContentLevelNames, l) {
		return l
	}
	return ExplicitContentLevelUnknown
}

func (l ExplicitContentLevel) Key() int       { return int(l) }
func (l ExplicitContentLevel) String() string { return nameOf(explicitContentLevelNames, l) }

func (l *ExplicitContentLevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, ExplicitContentLevelFromKey)
	return
}

// MFALevel is the two-factor requirement for moderators.
type MFALevel int

const (
	MFALevelUnknown MFALevel = iota - 1
	MFALevelNone
	MFALevelTwoFactorAuth
)

var mfaLevelNames = map[MFALevel]string{
	MFALevelUnknown:       "UNKNOWN",
	MFALevelNone:          "NONE",
	MFALevelTwoFactorAuth: "TWO_FACTOR_AUTH",
}

func MFALevelFromKey(key int) MFALevel {
	if l := MFALevel(key); isKnown(mfaLevelNames, l) {
		return l
	}
	return MFALevelUnknown
}

func (l MFALevel) Key() int       { return int(l) }
func (l MFALevel) String() string { return nameOf(mfaLevelNames, l) }

func (l *MFALevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, MFALevelFromKey)
	return
}

// NSFWLevel is the age rating of a guild.
type NSFWLevel int

const (
	NSFWLevelUnknown NSFWLevel = iota - 1
	NSFWLevelDefault
	NSFWLevelExplicit
	NSFWLevelSafe
	NSFWLevelAgeRestricted
)

var nsfwLevelNames = map[NSFWLevel]string{
	NSFWLevelUnknown:       "UNKNOWN",
	NSFWLevelDefault:       "DEFAULT",
	NSFWLevelExplicit:      "EXPLICIT",
	NSFWLevelSafe:          "SAFE",
	NSFWLevelAgeRestricted: "AGE_RESTRICTED",
}

func NSFWLevelFromKey(key int) NSFWLevel {
	if l := NSFWLevel(key); isKnown(nsfwLevelNames, l) {
		return l
	}
	return NSFWLevelUnknown
}

func (l NSFWLevel) Key() int       { return int(l) }
func (l NSFWLevel) String() string { return nameOf(nsfwLevelNames, l) }

func (l *NSFWLevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, NSFWLevelFromKey)
	return
}

// BoostTier is a guild's premium tier.
type BoostTier int

const (
	BoostTierUnknown BoostTier = iota - 1
	BoostTierNone
	BoostTier1
	BoostTier2
	BoostTier3
)

type boostTierInfo struct {
	name        string
	maxBitrate  int
	maxEmojis   int
	maxFileSize int64
}

var boostTierInfos = map[BoostTier]boostTierInfo{
	BoostTierUnknown: {"UNKNOWN", 96000, 50, 10 << 20},
	BoostTierNone:    {"NONE", 96000, 50, 10 << 20},
	BoostTier1:       {"TIER_1", 128000, 100, 10 << 20},
	BoostTier2:       {"TIER_2", 256000, 150, 50 << 20},
	BoostTier3:       {"TIER_3", 384000, 250, 100 << 20},
}

func BoostTierFromKey(key int) BoostTier {
	if _, ok := boostTierInfos[BoostTier(key)]; ok {
		return BoostTier(key)
	}
	return BoostTierUnknown
}

func (t BoostTier) Key() int       { return int(t) }
func (t BoostTier) String() string { return boostTierInfos[BoostTierFromKey(int(t))].name }

// MaxBitrate is the highest voice bitrate available at this tier.
func (t BoostTier) MaxBitrate() int { return boostTierInfos[BoostTierFromKey(int(t))].maxBitrate }

// MaxEmojis is the number of custom emoji slots per kind (static or animated).
func (t BoostTier) MaxEmojis() int { return boostTierInfos[BoostTierFromKey(int(t))].maxEmojis }

// MaxFileSize is the upload limit in bytes.
func (t BoostTier) MaxFileSize() int64 { return boostTierInfos[BoostTierFromKey(int(t))].maxFileSize }

func (t *BoostTier) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, BoostTierFromKey)
	return
}

// OnlineStatus is a user's presence status.
type OnlineStatus string

const (
	OnlineStatusOnline       OnlineStatus = "online"
	OnlineStatusIdle         OnlineStatus = "idle"
	OnlineStatusDoNotDisturb OnlineStatus = "dnd"
	OnlineStatusInvisible    OnlineStatus = "invisible"
	OnlineStatusOffline      OnlineStatus = "offline"
	OnlineStatusUnknown      OnlineStatus = ""
)

var onlineStatusNames = map[OnlineStatus]string{
	OnlineStatusOnline:       "ONLINE",
	OnlineStatusIdle:         "IDLE",
	OnlineStatusDoNotDisturb: "DO_NOT_DISTURB",
	OnlineStatusInvisible:    "INVISIBLE",
	OnlineStatusOffline:      "OFFLINE",
	OnlineStatusUnknown:      "UNKNOWN",
}

func OnlineStatusFromKey(key string) OnlineStatus {
	if s := OnlineStatus(key); isKnown(onlineStatusNames, s) {
		return s
	}
	return OnlineStatusUnknown
}

func (s OnlineStatus) Key() string    { return string(s) }
func (s OnlineStatus) String() string { return nameOf(onlineStatusNames, s) }

func (s *OnlineStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStringEnum(data, OnlineStatusFromKey)
	return
}
