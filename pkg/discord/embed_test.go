package discord

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

func TestEmbedBuilder(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e, err := NewEmbedBuilder().
		SetTitle("Release", "https://example.com/release").
		SetDescription("notes").
		AppendDescription(" and more").
		SetColor(0x00FF00).
		SetTimestamp(ts).
		SetFooter("footer", "attachment://icon.png").
		SetAuthor("author", "", "").
		AddField("name", "value", true).
		AddBlankField(false).
		Build()
	assert.NilError(t, err)
	assert.Equal(t, e.Type, EmbedTypeRich)
	assert.Equal(t, e.Description, "notes and more")
	assert.Equal(t, len(e.Fields), 2)
	assert.Equal(t, e.Footer.IconURL, "attachment://icon.png")
	assert.Assert(t, e.Timestamp.Equal(ts))
	assert.Assert(t, e.IsSendable())
	assert.Equal(t, e.Length(), len("Release")+len("notes and more")+len("name")+len("value")+2+len("footer")+len("author"))
}

func TestEmbedBuilderErrors(t *testing.T) {
	_, err := NewEmbedBuilder().Build()
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
	assert.Assert(t, cmp.ErrorContains(err, "empty embed"))

	b := NewEmbedBuilder().
		SetTitle(strings.Repeat("t", MaxEmbedTitleLength+1), "").
		SetImage("ftp://example.com/a.png").
		SetColor(-1).
		AddField(" ", "value", false).
		SetDescription("ok")
	_, err = b.Build()
	assert.ErrorIs(t, err, checks.ErrIllegalArgument)
	assert.Assert(t, cmp.ErrorContains(err, "Title"))
	assert.Assert(t, cmp.ErrorContains(err, "Image URL"))
	assert.Assert(t, cmp.ErrorContains(err, "Color"))
	assert.Assert(t, cmp.ErrorContains(err, "Field name"))
	assert.Equal(t, b.Length(), 2)
}

func TestEmbedLimits(t *testing.T) {
	b := NewEmbedBuilder()
	for range MaxEmbedFields {
		b.AddField("n", "v", false)
	}
	_, err := b.Build()
	assert.NilError(t, err)
	_, err = b.AddField("one", "more", false).Build()
	assert.Assert(t, cmp.ErrorContains(err, "more than 25 fields"))

	big := NewEmbedBuilder().SetDescription(strings.Repeat("d", MaxEmbedDescriptionLength))
	for range 3 {
		big.AddField("f", strings.Repeat("v", MaxEmbedFieldValueLength), false)
	}
	assert.Assert(t, big.Length() > MaxEmbedLength)
	_, err = big.Build()
	assert.Assert(t, cmp.ErrorContains(err, "6000"))
}
