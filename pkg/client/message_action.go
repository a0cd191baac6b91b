package client

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
	"github.com/norio-nomura/discordkit/pkg/xiter"
)

// MessageCreateAction sends a message.
type MessageCreateAction struct {
	builder
	c         *Client
	channelID snowflake.ID
	data      discord.MessageCreate
}

// SendMessage starts a message to channelID. Requires VIEW_CHANNEL and SEND_MESSAGES, plus
// EMBED_LINKS when embeds are set.
func (c *Client) SendMessage(channelID snowflake.ID) *MessageCreateAction {
	return &MessageCreateAction{c: c, channelID: channelID}
}

// SetContent replaces the content.
func (a *MessageCreateAction) SetContent(content string) *MessageCreateAction {
	if a.check(checks.NotLonger(content, discord.MaxMessageContentLength, "Content")) {
		a.data.Content = content
	}
	return a
}

// AddContent appends to the content.
func (a *MessageCreateAction) AddContent(content string) *MessageCreateAction {
	return a.SetContent(a.data.Content + content)
}

// SetEmbeds replaces the embeds. Every embed must be sendable and together they may not exceed
// the total embed length.
func (a *MessageCreateAction) SetEmbeds(embeds ...discord.Embed) *MessageCreateAction {
	if !a.check(checks.Check(len(embeds) <= discord.MaxMessageEmbeds, "Cannot send more than %d embeds in a message", discord.MaxMessageEmbeds)) {
		return a
	}
	total := 0
	for i, e := range embeds {
		if !a.check(checks.Check(e.IsSendable(), "Provided embed at index %d is empty or too long", i)) {
			return a
		}
		total += e.Length()
	}
	if a.check(checks.Check(total <= discord.MaxEmbedLength, "Cannot send embeds with more than %d characters in total (provided: %d)", discord.MaxEmbedLength, total)) {
		a.data.Embeds = embeds
	}
	return a
}

func (a *MessageCreateAction) SetTTS(tts bool) *MessageCreateAction {
	a.data.TTS = tts
	return a
}

// SetStickers sends up to three guild or standard stickers. Repeated IDs count once.
func (a *MessageCreateAction) SetStickers(ids ...snowflake.ID) *MessageCreateAction {
	ids = slices.Collect(xiter.Dedupe(slices.Values(ids)))
	if a.check(checks.NotMore(ids, discord.MaxMessageStickers, "Stickers")) {
		a.data.StickerIDs = ids
	}
	return a
}

// SetReply makes the message a reply to messageID in the same channel.
func (a *MessageCreateAction) SetReply(messageID snowflake.ID, failIfNotExists bool) *MessageCreateAction {
	a.data.MessageReference = &discord.MessageReference{
		MessageID:       messageID,
		ChannelID:       a.channelID,
		FailIfNotExists: &failIfNotExists,
	}
	return a
}

func (a *MessageCreateAction) SetAllowedMentions(mentions *discord.AllowedMentions) *MessageCreateAction {
	a.data.AllowedMentions = mentions
	return a
}

// SetSuppressEmbeds hides link previews.
func (a *MessageCreateAction) SetSuppressEmbeds(suppress bool) *MessageCreateAction {
	if suppress {
		a.data.Flags = a.data.Flags.Add(discord.MessageFlagSuppressEmbeds)
	} else {
		a.data.Flags = a.data.Flags.Remove(discord.MessageFlagSuppressEmbeds)
	}
	return a
}

// SetNonce sets a nonce of up to 25 characters. With enforce, Discord deduplicates messages
// sharing the nonce.
func (a *MessageCreateAction) SetNonce(nonce string, enforce bool) *MessageCreateAction {
	if a.check(checks.NotLonger(nonce, 25, "Nonce")) {
		a.data.Nonce = nonce
		a.data.EnforceNonce = enforce && nonce != ""
	}
	return a
}

func (a *MessageCreateAction) Data() discord.MessageCreate { return a.data }

// Action builds the request. The sent message is cached.
func (a *MessageCreateAction) Action() *rest.Action[discord.Message] {
	data := a.data
	if strings.TrimSpace(data.Content) == "" && len(data.Embeds) == 0 && len(data.StickerIDs) == 0 {
		return rest.Failed[discord.Message](errors.Join(a.err(), discord.NewErrorResponseError(discord.ErrorResponseCannotSendEmptyMessage)))
	}
	action := rest.Map(newAction(a.c, rest.CreateMessage, data, rest.Decode[discord.Message](), a.channelID), func(m discord.Message) (discord.Message, error) {
		a.c.CacheMessage(m)
		return m, nil
	})
	action.Precheck(func() error {
		perms := []discord.Permission{discord.PermissionViewChannel, discord.PermissionMessageSend}
		if len(data.Embeds) > 0 {
			perms = append(perms, discord.PermissionMessageEmbedLinks)
		}
		if data.MessageReference != nil {
			perms = append(perms, discord.PermissionMessageHistory)
		}
		return a.c.checkChannelPermissions(a.channelID, perms...)
	})
	return finish(&a.builder, action)
}

func (a *MessageCreateAction) Complete(ctx context.Context) (discord.Message, error) {
	return a.Action().Complete(ctx)
}

// DeleteMessage deletes a message. Deleting another user's message requires MANAGE_MESSAGES,
// which is only checked when the message is cached.
func (c *Client) DeleteMessage(channelID, messageID snowflake.ID) *rest.Action[struct{}] {
	action := rest.Map(newAction[struct{}](c, rest.DeleteMessage, nil, nil, channelID, messageID), func(v struct{}) (struct{}, error) {
		c.UncacheMessage(messageID)
		return v, nil
	})
	return action.Precheck(func() error {
		m, ok := c.MessageByID(messageID)
		if !ok {
			return nil
		}
		if err := checks.Check(m.Type.CanDelete(), "Cannot delete a message of type %s", m.Type); err != nil {
			return err
		}
		if self, ok := c.SelfUser(); ok && m.Author.ID == self.ID {
			return nil
		}
		return c.checkChannelPermissions(channelID, discord.PermissionMessageManage)
	})
}

// AddReaction reacts to a message as the bot. Requires MESSAGE_HISTORY, plus ADD_REACTIONS when
// the bot would be the first to react with emoji.
func (c *Client) AddReaction(channelID, messageID snowflake.ID, emoji discord.Emoji) *rest.Action[struct{}] {
	code := emoji.AsReactionCode()
	if err := checks.NotEmpty(code, "Emoji"); err != nil {
		return rest.Failed[struct{}](err)
	}
	return newAction[struct{}](c, rest.AddReaction, nil, nil, channelID, messageID, code).
		Precheck(func() error {
			if err := c.checkChannelPermissions(channelID, discord.PermissionMessageHistory); err != nil {
				return err
			}
			if m, ok := c.MessageByID(messageID); ok && hasReaction(m, emoji) {
				return nil
			}
			return c.checkChannelPermissions(channelID, discord.PermissionMessageAddReaction)
		})
}

func hasReaction(m discord.Message, emoji discord.Emoji) bool {
	_, ok := xiter.Find(slices.Values(m.Reactions), func(r discord.Reaction) bool {
		return r.Emoji.AsReactionCode() == emoji.AsReactionCode()
	})
	return ok
}
