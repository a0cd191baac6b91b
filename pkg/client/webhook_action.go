package client

import (
	"context"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

// WebhookAction creates an incoming webhook.
type WebhookAction struct {
	builder
	c         *Client
	channelID snowflake.ID
	data      discord.WebhookCreate
}

// CreateWebhook starts a webhook in channelID. Requires MANAGE_WEBHOOKS.
func (c *Client) CreateWebhook(channelID snowflake.ID, name string) *WebhookAction {
	a := &WebhookAction{c: c, channelID: channelID}
	if ch, ok := c.ChannelByID(channelID); ok {
		a.check(checks.Check(ch.Type() == discord.ChannelTypeText || ch.Type() == discord.ChannelTypeNews ||
			ch.Type() == discord.ChannelTypeVoice || ch.Type() == discord.ChannelTypeStage ||
			ch.Type() == discord.ChannelTypeForum || ch.Type() == discord.ChannelTypeMedia,
			"Cannot create a webhook in a channel of type %s", ch.Type()))
	}
	return a.SetName(name)
}

func (a *WebhookAction) Reason(reason string) *WebhookAction {
	a.reason = reason
	return a
}

// SetName sets the name. Names containing "clyde" are rejected by Discord.
func (a *WebhookAction) SetName(name string) *WebhookAction {
	if a.check(checks.InRange(name, 1, discord.MaxWebhookNameLength, "Name")) &&
		a.check(checks.Check(!strings.Contains(strings.ToLower(name), "clyde"), "Name may not contain \"clyde\"")) {
		a.data.Name = name
	}
	return a
}

func (a *WebhookAction) SetAvatar(avatar *discord.Icon) *WebhookAction {
	a.data.Avatar = avatar
	return a
}

func (a *WebhookAction) Action() *rest.Action[discord.Webhook] {
	action := newAction(a.c, rest.CreateWebhook, a.data, rest.Decode[discord.Webhook](), a.channelID).
		Precheck(func() error { return a.c.checkChannelPermissions(a.channelID, discord.PermissionManageWebhooks) })
	return finish(&a.builder, action)
}

func (a *WebhookAction) Complete(ctx context.Context) (discord.Webhook, error) {
	return a.Action().Complete(ctx)
}

// DeleteWebhook deletes a webhook. Requires MANAGE_WEBHOOKS in the webhook's channel.
func (c *Client) DeleteWebhook(webhook discord.Webhook) *rest.Action[struct{}] {
	return newAction[struct{}](c, rest.DeleteWebhook, nil, nil, webhook.ID).
		Precheck(func() error { return c.checkChannelPermissions(webhook.ChannelID, discord.PermissionManageWebhooks) })
}
