package discord

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

// EmbedType is the kind of an embed. Bots can only send rich embeds.
type EmbedType string

const (
	EmbedTypeImage                 EmbedType = "image"
	EmbedTypeVideo                 EmbedType = "video"
	EmbedTypeLink                  EmbedType = "link"
	EmbedTypeRich                  EmbedType = "rich"
	EmbedTypeAutoModerationMessage EmbedType = "auto_moderation_message"
	EmbedTypeUnknown               EmbedType = ""
)

var embedTypeNames = map[EmbedType]string{
	EmbedTypeImage:                 "IMAGE",
	EmbedTypeVideo:                 "VIDEO",
	EmbedTypeLink:                  "LINK",
	EmbedTypeRich:                  "RICH",
	EmbedTypeAutoModerationMessage: "AUTO_MODERATION_MESSAGE",
	EmbedTypeUnknown:               "UNKNOWN",
}

func EmbedTypeFromKey(key string) EmbedType {
	if t := EmbedType(key); isKnown(embedTypeNames, t) {
		return t
	}
	return EmbedTypeUnknown
}

func (t EmbedType) Key() string    { return string(t) }
func (t EmbedType) String() string { return nameOf(embedTypeNames, t) }

func (t *EmbedType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeStringEnum(data, EmbedTypeFromKey)
	return
}

const (
	MaxEmbedTitleLength       = 256
	MaxEmbedDescriptionLength = 4096
	MaxEmbedFields            = 25
	MaxEmbedFieldNameLength   = 256
	MaxEmbedFieldValueLength  = 1024
	MaxEmbedFooterLength      = 2048
	MaxEmbedAuthorLength      = 256
	MaxEmbedURLLength         = 2000
	MaxEmbedLength            = 6000
)

const zeroWidthSpace = "\u200E"

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedResource is an image, thumbnail or video.
type EmbedResource struct {
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url,omitempty"`
	Height   int    `json:"height,omitempty"`
	Width    int    `json:"width,omitempty"`
}

type EmbedProvider struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type Embed struct {
	Title       string         `json:"title,omitempty"`
	Type        EmbedType      `json:"type,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Timestamp   *time.Time     `json:"timestamp,omitempty"`
	Color       int            `json:"color,omitempty"`
	Footer      *EmbedFooter   `json:"footer,omitempty"`
	Image       *EmbedResource `json:"image,omitempty"`
	Thumbnail   *EmbedResource `json:"thumbnail,omitempty"`
	Video       *EmbedResource `json:"video,omitempty"`
	Provider    *EmbedProvider `json:"provider,omitempty"`
	Author      *EmbedAuthor   `json:"author,omitempty"`
	Fields      []EmbedField   `json:"fields,omitempty"`
}

// Length is the character count Discord holds against MaxEmbedLength.
func (e Embed) Length() int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	return n
}

// IsEmpty reports whether the embed would render as nothing.
func (e Embed) IsEmpty() bool {
	return e.Title == "" && e.Description == "" && len(e.Fields) == 0 && e.Timestamp == nil &&
		e.Footer == nil && e.Image == nil && e.Thumbnail == nil && e.Author == nil
}

// IsSendable reports whether a bot may send the embed.
func (e Embed) IsSendable() bool {
	return !e.IsEmpty() && e.Length() <= MaxEmbedLength
}

// EmbedBuilder assembles a rich embed. Setters record invalid input instead of failing;
// Build reports every recorded problem at once.
type EmbedBuilder struct {
	embed Embed
	errs  []error
}

func NewEmbedBuilder() *EmbedBuilder {
	return &EmbedBuilder{embed: Embed{Type: EmbedTypeRich}}
}

// EmbedBuilderFrom starts from a copy of e.
func EmbedBuilderFrom(e Embed) *EmbedBuilder {
	b := NewEmbedBuilder()
	b.embed = e
	b.embed.Type = EmbedTypeRich
	b.embed.Fields = append([]EmbedField(nil), e.Fields...)
	return b
}

func (b *EmbedBuilder) check(err error) bool {
	if err != nil {
		b.errs = append(b.errs, err)
		return false
	}
	return true
}

func (b *EmbedBuilder) checkURL(url, name string) bool {
	if url == "" {
		return true
	}
	return b.check(errors.Join(checks.NotLonger(url, MaxEmbedURLLength, name), checks.HTTPURL(url, name)))
}

// SetTitle sets the title and the optional link on it. An empty title clears both.
func (b *EmbedBuilder) SetTitle(title, url string) *EmbedBuilder {
	if title == "" {
		b.embed.Title, b.embed.URL = "", ""
		return b
	}
	if b.check(checks.NotLonger(title, MaxEmbedTitleLength, "Title")) && b.checkURL(url, "URL") {
		b.embed.Title, b.embed.URL = title, url
	}
	return b
}

func (b *EmbedBuilder) SetDescription(description string) *EmbedBuilder {
	if b.check(checks.NotLonger(description, MaxEmbedDescriptionLength, "Description")) {
		b.embed.Description = description
	}
	return b
}

func (b *EmbedBuilder) AppendDescription(text string) *EmbedBuilder {
	return b.SetDescription(b.embed.Description + text)
}

func (b *EmbedBuilder) SetColor(color int) *EmbedBuilder {
	if b.check(checks.Between(color, 0, 0xFFFFFF, "Color")) {
		b.embed.Color = color
	}
	return b
}

func (b *EmbedBuilder) SetTimestamp(t time.Time) *EmbedBuilder {
	if t.IsZero() {
		b.embed.Timestamp = nil
		return b
	}
	b.embed.Timestamp = &t
	return b
}

func (b *EmbedBuilder) SetFooter(text, iconURL string) *EmbedBuilder {
	if text == "" {
		b.embed.Footer = nil
		return b
	}
	if b.check(checks.NotLonger(text, MaxEmbedFooterLength, "Footer text")) && b.checkURL(iconURL, "Footer icon URL") {
		b.embed.Footer = &EmbedFooter{Text: text, IconURL: iconURL}
	}
	return b
}

func (b *EmbedBuilder) SetAuthor(name, url, iconURL string) *EmbedBuilder {
	if name == "" {
		b.embed.Author = nil
		return b
	}
	if b.check(checks.NotLonger(name, MaxEmbedAuthorLength, "Author name")) &&
		b.checkURL(url, "Author URL") && b.checkURL(iconURL, "Author icon URL") {
		b.embed.Author = &EmbedAuthor{Name: name, URL: url, IconURL: iconURL}
	}
	return b
}

func (b *EmbedBuilder) SetImage(url string) *EmbedBuilder {
	if url == "" {
		b.embed.Image = nil
	} else if b.checkURL(url, "Image URL") {
		b.embed.Image = &EmbedResource{URL: url}
	}
	return b
}

func (b *EmbedBuilder) SetThumbnail(url string) *EmbedBuilder {
	if url == "" {
		b.embed.Thumbnail = nil
	} else if b.checkURL(url, "Thumbnail URL") {
		b.embed.Thumbnail = &EmbedResource{URL: url}
	}
	return b
}

// AddField appends a field. Name and value must both be non-blank.
func (b *EmbedBuilder) AddField(name, value string, inline bool) *EmbedBuilder {
	ok := b.check(errors.Join(
		checks.NotBlank(name, "Field name"),
		checks.NotBlank(value, "Field value"),
		checks.NotLonger(name, MaxEmbedFieldNameLength, "Field name"),
		checks.NotLonger(value, MaxEmbedFieldValueLength, "Field value"),
		checks.Check(len(b.embed.Fields) < MaxEmbedFields, "Cannot have more than %d fields", MaxEmbedFields),
	))
	if ok {
		b.embed.Fields = append(b.embed.Fields, EmbedField{Name: name, Value: value, Inline: inline})
	}
	return b
}

// AddBlankField appends a field that renders as empty space.
func (b *EmbedBuilder) AddBlankField(inline bool) *EmbedBuilder {
	if b.check(checks.Check(len(b.embed.Fields) < MaxEmbedFields, "Cannot have more than %d fields", MaxEmbedFields)) {
		b.embed.Fields = append(b.embed.Fields, EmbedField{Name: zeroWidthSpace, Value: zeroWidthSpace, Inline: inline})
	}
	return b
}

func (b *EmbedBuilder) ClearFields() *EmbedBuilder {
	b.embed.Fields = nil
	return b
}

// Length is the current character count of the embed.
func (b *EmbedBuilder) Length() int { return b.embed.Length() }

func (b *EmbedBuilder) IsEmpty() bool { return b.embed.IsEmpty() }

// Build returns the embed, or every setter error plus the empty and total length checks.
func (b *EmbedBuilder) Build() (Embed, error) {
	errs := append([]error(nil), b.errs...)
	errs = append(errs,
		checks.Check(!b.embed.IsEmpty(), "Cannot build an empty embed"),
		checks.Check(b.embed.Length() <= MaxEmbedLength, "Cannot build an embed with more than %d characters (provided: %d)", MaxEmbedLength, b.embed.Length()),
	)
	if err := errors.Join(errs...); err != nil {
		return Embed{}, err
	}
	e := b.embed
	e.Fields = append([]EmbedField(nil), b.embed.Fields...)
	return e, nil
}
