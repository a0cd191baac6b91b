package discord

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
)

func TestMessageUnmarshal(t *testing.T) {
	var m Message
	err := unmarshal(`{
		"id":"3","channel_id":"2","guild_id":"1","type":19,"flags":4,
		"author":{"id":"9","username":"kuro","discriminator":"0"},
		"content":"hello","timestamp":"2024-01-01T00:00:00+00:00","edited_timestamp":"2024-01-01T00:01:00+00:00",
		"tts":false,"mention_everyone":false,"mentions":[{"id":"8","username":"shiro"}],"mention_roles":[],
		"attachments":[{"id":"4","filename":"a.png","size":10,"url":"u","proxy_url":"p","width":1,"height":1}],
		"embeds":[{"type":"rich","title":"t"}],
		"sticker_items":[{"id":"5","name":"wave","format_type":3}],
		"pinned":false
	}`, &m)
	assert.NilError(t, err)
	assert.Equal(t, m.Type, MessageTypeInlineReply)
	assert.Assert(t, m.Flags.Has(MessageFlagSuppressEmbeds))
	assert.Assert(t, m.IsEdited())
	assert.Assert(t, m.IsFromGuild())
	assert.Assert(t, m.MentionsUser(8))
	assert.Assert(t, m.Attachments[0].IsImage())
	assert.Equal(t, m.Embeds[0].Type, EmbedTypeRich)
	assert.Equal(t, m.StickerItems[0].IconURL(), "https://cdn.discordapp.com/stickers/5.json")
	assert.Equal(t, m.JumpURL(), "https://discord.com/channels/1/2/3")
	assert.Equal(t, m.Author.Tag(), "kuro")
}

func TestMessageCreateIsEmpty(t *testing.T) {
	assert.Assert(t, MessageCreate{}.IsEmpty())
	assert.Assert(t, !MessageCreate{Content: "x"}.IsEmpty())
	assert.Assert(t, !MessageCreate{StickerIDs: []snowflake.ID{1}}.IsEmpty())
}

func TestUserAvatars(t *testing.T) {
	legacy := User{ID: 80351110224678912, Username: "Nelly", Discriminator: "1337"}
	assert.Equal(t, legacy.Tag(), "Nelly#1337")
	assert.Equal(t, legacy.DefaultAvatarURL(), "https://cdn.discordapp.com/embed/avatars/2.png")
	assert.Equal(t, legacy.EffectiveAvatarURL(), legacy.DefaultAvatarURL())

	animated := User{ID: 1, Username: "a", Avatar: "a_hash", GlobalName: "Display"}
	assert.Equal(t, animated.AvatarURL(), "https://cdn.discordapp.com/avatars/1/a_hash.gif")
	assert.Equal(t, animated.EffectiveName(), "Display")

	m := Member{GuildID: 7, User: animated, Nick: "nick", Avatar: "g"}
	assert.Equal(t, m.EffectiveName(), "nick")
	assert.Equal(t, m.EffectiveAvatarURL(), "https://cdn.discordapp.com/guilds/7/users/1/avatars/g.png")
}

func TestScheduledEventURLs(t *testing.T) {
	e := ScheduledEvent{ID: 2, GuildID: 1, EntityType: ScheduledEventTypeExternal,
		EntityMetadata: &ScheduledEventEntityMetadata{Location: "Tokyo"}}
	assert.Assert(t, e.IsExternal())
	assert.Equal(t, e.Location(), "Tokyo")
	assert.Equal(t, e.ImageURL(), "")
	e.Image = "cover"
	assert.Equal(t, e.ImageURL(), "https://cdn.discordapp.com/guild-events/2/cover.png")
}

func TestErrorResponseError(t *testing.T) {
	err := error(&ErrorResponseError{Response: ErrorResponseUnknownMessage, Code: 10008, Message: "Unknown Message"})
	assert.ErrorIs(t, err, NewErrorResponseError(ErrorResponseUnknownMessage))
	assert.Assert(t, IsErrorResponse(err, ErrorResponseUnknownChannel, ErrorResponseUnknownMessage))
	assert.Assert(t, !IsErrorResponse(err, ErrorResponseMissingAccess))
	assert.Error(t, err, "10008: Unknown Message")

	perm := &InsufficientPermissionError{GuildID: 1, Permission: PermissionManageRoles}
	assert.Error(t, perm, "Cannot perform action due to a lack of Permission. Missing permission: Manage Roles")
}
