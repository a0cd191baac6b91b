package discord

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// StickerFormat is the file format of a sticker.
type StickerFormat int

const (
	StickerFormatUnknown StickerFormat = -1
	StickerFormatPNG     StickerFormat = 1
	StickerFormatAPNG    StickerFormat = 2
	StickerFormatLottie  StickerFormat = 3
	StickerFormatGIF     StickerFormat = 4
)

type stickerFormatInfo struct {
	name      string
	extension string
}

var stickerFormatInfos = map[StickerFormat]stickerFormatInfo{
	StickerFormatUnknown: {"UNKNOWN", ""},
	StickerFormatPNG:     {"PNG", "png"},
	StickerFormatAPNG:    {"APNG", "png"},
	StickerFormatLottie:  {"LOTTIE", "json"},
	StickerFormatGIF:     {"GIF", "gif"},
}

func StickerFormatFromKey(key int) StickerFormat {
	if _, ok := stickerFormatInfos[StickerFormat(key)]; ok {
		return StickerFormat(key)
	}
	return StickerFormatUnknown
}

func (f StickerFormat) Key() int { return int(f) }

func (f StickerFormat) String() string {
	return stickerFormatInfos[StickerFormatFromKey(int(f))].name
}

// Extension is the CDN file extension, "" for unknown formats.
func (f StickerFormat) Extension() string {
	return stickerFormatInfos[StickerFormatFromKey(int(f))].extension
}

func (f *StickerFormat) UnmarshalJSON(data []byte) (err error) {
	*f, err = decodeIntEnum(data, StickerFormatFromKey)
	return
}

// StickerType tells built-in stickers from guild stickers.
type StickerType int

const (
	StickerTypeUnknown  StickerType = -1
	StickerTypeStandard StickerType = 1
	StickerTypeGuild    StickerType = 2
)

var stickerTypeNames = map[StickerType]string{
	StickerTypeUnknown:  "UNKNOWN",
	StickerTypeStandard: "STANDARD",
	StickerTypeGuild:    "GUILD",
}

func StickerTypeFromKey(key int) StickerType {
	if t := StickerType(key); isKnown(stickerTypeNames, t) {
		return t
	}
	return StickerTypeUnknown
}

func (t StickerType) Key() int       { return int(t) }
func (t StickerType) String() string { return nameOf(stickerTypeNames, t) }

func (t *StickerType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, StickerTypeFromKey)
	return
}

// StickerItem is the minimal sticker reference attached to messages.
type StickerItem struct {
	ID         snowflake.ID  `json:"id"`
	Name       string        `json:"name"`
	FormatType StickerFormat `json:"format_type"`
}

// IconURL returns the sticker image on the CDN.
func (s StickerItem) IconURL() string {
	return stickerURL(s.ID, s.FormatType)
}

// Sticker is a full sticker object.
type Sticker struct {
	StickerItem
	PackID      snowflake.ID `json:"pack_id,omitempty"`
	Description string       `json:"description"`
	Tags        string       `json:"tags"`
	Type        StickerType  `json:"type"`
	Available   bool         `json:"available,omitempty"`
	GuildID     snowflake.ID `json:"guild_id,omitempty"`
	User        *User        `json:"user,omitempty"`
	SortValue   int          `json:"sort_value,omitempty"`
}

func stickerURL(id snowflake.ID, format StickerFormat) string {
	if format == StickerFormatGIF {
		return fmt.Sprintf("https://media.discordapp.net/stickers/%s.gif", id)
	}
	return fmt.Sprintf("%s/stickers/%s.%s", CDNURL, id, format.Extension())
}
