package discord

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

func TestEmojiFromUnicode(t *testing.T) {
	for _, code := range []string{"U+1F602", "u+1f602", "😂"} {
		e, err := EmojiFromUnicode(code)
		assert.NilError(t, err, code)
		assert.Equal(t, e.Name, "😂")
		assert.Equal(t, e.Type(), EmojiTypeUnicode)
		assert.Equal(t, e.AsCodepoints(), "U+1f602")
		assert.Equal(t, e.AsReactionCode(), "😂")
		assert.Equal(t, e.ImageURL(), "")
	}

	e, err := EmojiFromUnicode("U+1F1EFU+1F1F5")
	assert.NilError(t, err)
	assert.Equal(t, e.Name, "🇯🇵")

	e, err = EmojiFromUnicode("U+1F468 U+200D U+1F4BB")
	assert.NilError(t, err)
	assert.Equal(t, e.Name, "\U0001F468\u200D\U0001F4BB")

	for _, code := range []string{"U+ZZZZ", "U+110000", "U+-41", "U+D83D"} {
		_, err = EmojiFromUnicode(code)
		assert.ErrorIs(t, err, checks.ErrIllegalArgument, code)
	}
	_, err = EmojiFromUnicode(" ")
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
}

func TestEmojiFromFormatted(t *testing.T) {
	e, err := EmojiFromFormatted("<a:dance:123456789123456789>")
	assert.NilError(t, err)
	assert.Equal(t, e.Name, "dance")
	assert.Equal(t, e.ID, snowflake.ID(123456789123456789))
	assert.Assert(t, e.Animated)
	assert.Equal(t, e.Type(), EmojiTypeCustom)
	assert.Equal(t, e.AsReactionCode(), "dance:123456789123456789")
	assert.Equal(t, e.ImageURL(), "https://cdn.discordapp.com/emojis/123456789123456789.gif")

	again, err := EmojiFromFormatted(e.AsMention())
	assert.NilError(t, err)
	assert.DeepEqual(t, again, e)

	static, err := EmojiFromMarkdown("<:blob:42>")
	assert.NilError(t, err)
	assert.Assert(t, !static.Animated)
	assert.Equal(t, static.Formatted(), "<:blob:42>")

	uni, err := EmojiFromFormatted("🔥")
	assert.NilError(t, err)
	assert.Equal(t, uni.Type(), EmojiTypeUnicode)
}

func TestEmojiFromCustom(t *testing.T) {
	_, err := EmojiFromCustom("", 1, false)
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
	_, err = EmojiFromCustom("x", 0, false)
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
}

func TestEmojiFromData(t *testing.T) {
	e, err := EmojiFromData([]byte(`{"id":"41771983429993937","name":"LUL","roles":["41771983429993000"],"require_colons":true,"managed":false,"available":true}`))
	assert.NilError(t, err)
	assert.Equal(t, e.Name, "LUL")
	assert.Equal(t, e.ID, snowflake.ID(41771983429993937))
	assert.DeepEqual(t, e.Roles, []snowflake.ID{41771983429993000})
	assert.Assert(t, e.Available)

	e, err = EmojiFromData([]byte(`{"id":null,"name":"🔥"}`))
	assert.NilError(t, err)
	assert.Equal(t, e.Type(), EmojiTypeUnicode)
}
