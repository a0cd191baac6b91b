package discord

import (
	"testing"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
)

func unmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

func TestMentions(t *testing.T) {
	id := snowflake.ID(123456789123456789)
	assert.Equal(t, UserMention(id), "<@123456789123456789>")
	assert.Equal(t, RoleMention(id), "<@&123456789123456789>")
	assert.Equal(t, ChannelMention(id), "<#123456789123456789>")
	assert.Equal(t, Role{ID: id, GuildID: id}.AsMention(), "@everyone")
}

func TestTimeFormat(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, TimeFormatRelative.Format(ts), "<t:1700000000:R>")

	parsed, ok := ParseTimestamp("see you at <t:1700000000:D>!")
	assert.Assert(t, ok)
	assert.Equal(t, parsed.Format, TimeFormatDateLong)
	assert.Assert(t, parsed.Time.Equal(ts))
	assert.Equal(t, parsed.String(), "<t:1700000000:D>")

	parsed, ok = ParseTimestamp("<t:1700000000>")
	assert.Assert(t, ok)
	assert.Equal(t, parsed.Format, TimeFormatDefault)

	parsed, ok = ParseTimestamp("<t:-60:R> then <t:1700000000:t>")
	assert.Assert(t, ok)
	assert.Equal(t, parsed.Format, TimeFormatRelative)
	assert.Equal(t, parsed.Time.Unix(), int64(-60))

	_, ok = ParseTimestamp("no timestamp")
	assert.Assert(t, !ok)
	_, ok = ParseTimestamp("<t:1700000000:x>")
	assert.Assert(t, !ok)
}

func TestCreatedAt(t *testing.T) {
	// 175928847299117063 is the example snowflake from the API documentation.
	created := CreatedAt(snowflake.ID(175928847299117063))
	assert.Equal(t, created.UTC().Format(time.RFC3339), "2016-04-30T11:18:25Z")
}
