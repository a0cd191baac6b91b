package discord

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ScheduledEventStatus is the lifecycle state of a scheduled event.
type ScheduledEventStatus int

const (
	ScheduledEventStatusUnknown   ScheduledEventStatus = -1
	ScheduledEventStatusScheduled ScheduledEventStatus = 1
	ScheduledEventStatusActive    ScheduledEventStatus = 2
	ScheduledEventStatusCompleted ScheduledEventStatus = 3
	ScheduledEventStatusCanceled  ScheduledEventStatus = 4
)

var scheduledEventStatusNames = map[ScheduledEventStatus]string{
	ScheduledEventStatusUnknown:   "UNKNOWN",
	ScheduledEventStatusScheduled: "SCHEDULED",
	ScheduledEventStatusActive:    "ACTIVE",
	ScheduledEventStatusCompleted: "COMPLETED",
	ScheduledEventStatusCanceled:  "CANCELED",
}

func ScheduledEventStatusFromKey(key int) ScheduledEventStatus {
	if s := ScheduledEventStatus(key); isKnown(scheduledEventStatusNames, s) {
		return s
	}
	return ScheduledEventStatusUnknown
}

func (s ScheduledEventStatus) Key() int       { return int(s) }
func (s ScheduledEventStatus) String() string { return nameOf(scheduledEventStatusNames, s) }

// IsEnded reports whether the event can no longer change status.
func (s ScheduledEventStatus) IsEnded() bool {
	return s == ScheduledEventStatusCompleted || s == ScheduledEventStatusCanceled
}

func (s *ScheduledEventStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeIntEnum(data, ScheduledEventStatusFromKey)
	return
}

// ScheduledEventType is where a scheduled event takes place.
type ScheduledEventType int

const (
	ScheduledEventTypeUnknown       ScheduledEventType = -1
	ScheduledEventTypeStageInstance ScheduledEventType = 1
	ScheduledEventTypeVoice         ScheduledEventType = 2
	ScheduledEventTypeExternal      ScheduledEventType = 3
)

var scheduledEventTypeNames = map[ScheduledEventType]string{
	ScheduledEventTypeUnknown:       "UNKNOWN",
	ScheduledEventTypeStageInstance: "STAGE_INSTANCE",
	ScheduledEventTypeVoice:         "VOICE",
	ScheduledEventTypeExternal:      "EXTERNAL",
}

func ScheduledEventTypeFromKey(key int) ScheduledEventType {
	if t := ScheduledEventType(key); isKnown(scheduledEventTypeNames, t) {
		return t
	}
	return ScheduledEventTypeUnknown
}

func (t ScheduledEventType) Key() int       { return int(t) }
func (t ScheduledEventType) String() string { return nameOf(scheduledEventTypeNames, t) }

func (t *ScheduledEventType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, ScheduledEventTypeFromKey)
	return
}

const (
	MaxScheduledEventNameLength        = 100
	MaxScheduledEventDescriptionLength = 1000
	MaxScheduledEventLocationLength    = 100
)

// ScheduledEventEntityMetadata holds the location of external events.
type ScheduledEventEntityMetadata struct {
	Location string `json:"location,omitempty"`
}

// ScheduledEvent is a guild event shown in the events tab.
type ScheduledEvent struct {
	ID                 snowflake.ID                  `json:"id"`
	GuildID            snowflake.ID                  `json:"guild_id"`
	ChannelID          snowflake.ID                  `json:"channel_id,omitempty"`
	CreatorID          snowflake.ID                  `json:"creator_id,omitempty"`
	Creator            *User                         `json:"creator,omitempty"`
	Name               string                        `json:"name"`
	Description        string                        `json:"description,omitempty"`
	ScheduledStartTime time.Time                     `json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time                    `json:"scheduled_end_time,omitempty"`
	PrivacyLevel       int                           `json:"privacy_level"`
	Status             ScheduledEventStatus          `json:"status"`
	EntityType         ScheduledEventType            `json:"entity_type"`
	EntityID           snowflake.ID                  `json:"entity_id,omitempty"`
	EntityMetadata     *ScheduledEventEntityMetadata `json:"entity_metadata,omitempty"`
	UserCount          int                           `json:"user_count,omitempty"`
	Image              string                        `json:"image,omitempty"`
}

// IsExternal reports whether the event happens outside of Discord.
func (e ScheduledEvent) IsExternal() bool { return e.EntityType == ScheduledEventTypeExternal }

// Location returns the external location, or "" for channel events.
func (e ScheduledEvent) Location() string {
	if e.EntityMetadata == nil {
		return ""
	}
	return e.EntityMetadata.Location
}

// ImageURL returns the cover image, or "" when the event has none.
func (e ScheduledEvent) ImageURL() string {
	if e.Image == "" {
		return ""
	}
	return fmt.Sprintf("%s/guild-events/%s/%s.png", CDNURL, e.ID, e.Image)
}

// URL returns the invite-style link of the event.
func (e ScheduledEvent) URL() string {
	return fmt.Sprintf("%s/events/%s/%s", AppURL, e.GuildID, e.ID)
}

// StagePrivacyLevel is the visibility of a stage instance.
type StagePrivacyLevel int

const (
	StagePrivacyLevelUnknown   StagePrivacyLevel = -1
	StagePrivacyLevelPublic    StagePrivacyLevel = 1
	StagePrivacyLevelGuildOnly StagePrivacyLevel = 2
)

var stagePrivacyLevelNames = map[StagePrivacyLevel]string{
	StagePrivacyLevelUnknown:   "UNKNOWN",
	StagePrivacyLevelPublic:    "PUBLIC",
	StagePrivacyLevelGuildOnly: "GUILD_ONLY",
}

func StagePrivacyLevelFromKey(key int) StagePrivacyLevel {
	if l := StagePrivacyLevel(key); isKnown(stagePrivacyLevelNames, l) {
		return l
	}
	return StagePrivacyLevelUnknown
}

func (l StagePrivacyLevel) Key() int       { return int(l) }
func (l StagePrivacyLevel) String() string { return nameOf(stagePrivacyLevelNames, l) }

func (l *StagePrivacyLevel) UnmarshalJSON(data []byte) (err error) {
	*l, err = decodeIntEnum(data, StagePrivacyLevelFromKey)
	return
}

// StageInstance is a live stage in a stage channel.
type StageInstance struct {
	ID                    snowflake.ID      `json:"id"`
	GuildID               snowflake.ID      `json:"guild_id"`
	ChannelID             snowflake.ID      `json:"channel_id"`
	Topic                 string            `json:"topic"`
	PrivacyLevel          StagePrivacyLevel `json:"privacy_level"`
	GuildScheduledEventID snowflake.ID      `json:"guild_scheduled_event_id,omitempty"`
}
