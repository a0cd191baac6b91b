package discord

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// WebhookType is the kind of a webhook.
type WebhookType int

const (
	WebhookTypeUnknown     WebhookType = -1
	WebhookTypeIncoming    WebhookType = 1
	WebhookTypeFollower    WebhookType = 2
	WebhookTypeApplication WebhookType = 3
)

var webhookTypeNames = map[WebhookType]string{
	WebhookTypeUnknown:     "UNKNOWN",
	WebhookTypeIncoming:    "INCOMING",
	WebhookTypeFollower:    "FOLLOWER",
	WebhookTypeApplication: "APPLICATION",
}

func WebhookTypeFromKey(key int) WebhookType {
	if t := WebhookType(key); isKnown(webhookTypeNames, t) {
		return t
	}
	return WebhookTypeUnknown
}

func (t WebhookType) Key() int       { return int(t) }
func (t WebhookType) String() string { return nameOf(webhookTypeNames, t) }

func (t *WebhookType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, WebhookTypeFromKey)
	return
}

const MaxWebhookNameLength = 80

// Webhook is a channel webhook. Token is only present for incoming webhooks the bot can see.
type Webhook struct {
	ID            snowflake.ID `json:"id"`
	Type          WebhookType  `json:"type"`
	GuildID       snowflake.ID `json:"guild_id,omitempty"`
	ChannelID     snowflake.ID `json:"channel_id"`
	User          *User        `json:"user,omitempty"`
	Name          string       `json:"name"`
	Avatar        string       `json:"avatar,omitempty"`
	Token         string       `json:"token,omitempty"`
	ApplicationID snowflake.ID `json:"application_id,omitempty"`
}

// URL is the execute URL of the webhook, or "" when the token is unknown.
func (w Webhook) URL() string {
	if w.Token == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/webhooks/%s/%s", AppURL, w.ID, w.Token)
}

// AvatarURL returns the custom avatar, or "" when the webhook uses the default one.
func (w Webhook) AvatarURL() string {
	if w.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", CDNURL, w.ID, w.Avatar, hashExtension(w.Avatar))
}

// WebhookCreate is the payload of a create webhook request.
type WebhookCreate struct {
	Name   string `json:"name"`
	Avatar *Icon  `json:"avatar,omitempty"`
}
