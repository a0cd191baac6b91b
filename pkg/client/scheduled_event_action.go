package client

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

type scheduledEventCreate struct {
	ChannelID          snowflake.ID                          `json:"channel_id,omitempty"`
	EntityMetadata     *discord.ScheduledEventEntityMetadata `json:"entity_metadata,omitempty"`
	Name               string                                `json:"name"`
	PrivacyLevel       discord.StagePrivacyLevel             `json:"privacy_level"`
	ScheduledStartTime time.Time                             `json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time                            `json:"scheduled_end_time,omitempty"`
	Description        string                                `json:"description,omitempty"`
	EntityType         discord.ScheduledEventType            `json:"entity_type"`
	Image              *discord.Icon                         `json:"image,omitempty"`
}

// ScheduledEventAction creates a guild scheduled event. The event is either bound to a stage
// or voice channel, or external with a location and an end time.
type ScheduledEventAction struct {
	builder
	c       *Client
	guildID snowflake.ID
	data    scheduledEventCreate
	now     func() time.Time
}

// CreateScheduledEvent starts an event named name beginning at start. Requires MANAGE_EVENTS.
func (c *Client) CreateScheduledEvent(guildID snowflake.ID, name string, start time.Time) *ScheduledEventAction {
	a := &ScheduledEventAction{
		c:       c,
		guildID: guildID,
		data:    scheduledEventCreate{PrivacyLevel: discord.StagePrivacyLevelGuildOnly},
		now:     time.Now,
	}
	if a.check(checks.InRange(name, 1, discord.MaxScheduledEventNameLength, "Name")) {
		a.data.Name = name
	}
	a.data.ScheduledStartTime = start
	return a
}

func (a *ScheduledEventAction) Reason(reason string) *ScheduledEventAction {
	a.reason = reason
	return a
}

func (a *ScheduledEventAction) SetDescription(description string) *ScheduledEventAction {
	if a.check(checks.NotLonger(description, discord.MaxScheduledEventDescriptionLength, "Description")) {
		a.data.Description = description
	}
	return a
}

// SetChannel binds the event to a stage or voice channel.
func (a *ScheduledEventAction) SetChannel(channelID snowflake.ID) *ScheduledEventAction {
	typ := discord.ScheduledEventTypeVoice
	if ch, ok := a.c.ChannelByID(channelID); ok {
		isStage := ch.Type() == discord.ChannelTypeStage
		if !a.check(checks.Check(isStage || ch.Type() == discord.ChannelTypeVoice, "Channel %s must be a stage or voice channel", channelID)) {
			return a
		}
		if isStage {
			typ = discord.ScheduledEventTypeStageInstance
		}
	}
	a.data.ChannelID = channelID
	a.data.EntityType = typ
	a.data.EntityMetadata = nil
	return a
}

// SetLocation makes the event external.
func (a *ScheduledEventAction) SetLocation(location string) *ScheduledEventAction {
	if a.check(checks.InRange(location, 1, discord.MaxScheduledEventLocationLength, "Location")) {
		a.data.ChannelID = 0
		a.data.EntityType = discord.ScheduledEventTypeExternal
		a.data.EntityMetadata = &discord.ScheduledEventEntityMetadata{Location: location}
	}
	return a
}

func (a *ScheduledEventAction) SetEndTime(end time.Time) *ScheduledEventAction {
	a.data.ScheduledEndTime = &end
	return a
}

func (a *ScheduledEventAction) SetImage(image *discord.Icon) *ScheduledEventAction {
	a.data.Image = image
	return a
}

func (a *ScheduledEventAction) validate() error {
	d := a.data
	var errs builder
	errs.check(checks.Check(d.ScheduledStartTime.After(a.now()), "Cannot schedule event in the past"))
	errs.check(checks.Check(d.EntityType != 0, "Event must have a channel or a location"))
	if d.ScheduledEndTime != nil {
		errs.check(checks.Check(d.ScheduledEndTime.After(d.ScheduledStartTime), "Cannot schedule event to end before starting"))
	}
	if d.EntityType == discord.ScheduledEventTypeExternal {
		errs.check(checks.Check(d.ScheduledEndTime != nil, "Missing required parameter: End Time"))
	}
	return errs.err()
}

func (a *ScheduledEventAction) Action() *rest.Action[discord.ScheduledEvent] {
	if err := a.validate(); err != nil {
		return rest.Failed[discord.ScheduledEvent](errors.Join(a.err(), err))
	}
	action := newAction(a.c, rest.CreateScheduledEvent, a.data, rest.Decode[discord.ScheduledEvent](), a.guildID).
		Precheck(func() error { return a.c.checkGuildPermissions(a.guildID, discord.PermissionManageEvents) })
	return finish(&a.builder, action)
}

func (a *ScheduledEventAction) Complete(ctx context.Context) (discord.ScheduledEvent, error) {
	return a.Action().Complete(ctx)
}
