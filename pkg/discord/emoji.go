package discord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

// EmojiType tells unicode emojis from custom (guild or application) emojis.
type EmojiType int

const (
	EmojiTypeUnicode EmojiType = iota
	EmojiTypeCustom
)

func (t EmojiType) String() string {
	if t == EmojiTypeCustom {
		return "CUSTOM"
	}
	return "UNICODE"
}

var customEmojiPattern = regexp.MustCompile(`^<(a)?:([a-zA-Z0-9_~]+):(\d+)>$`)

// Emoji is either a unicode emoji (zero ID) or a custom emoji. Guild emojis fill the extra fields.
type Emoji struct {
	ID            snowflake.ID   `json:"id,omitempty"`
	Name          string         `json:"name"`
	Animated      bool           `json:"animated,omitempty"`
	Roles         []snowflake.ID `json:"roles,omitempty"`
	User          *User          `json:"user,omitempty"`
	RequireColons bool           `json:"require_colons,omitempty"`
	Managed       bool           `json:"managed,omitempty"`
	Available     bool           `json:"available,omitempty"`
}

// EmojiFromUnicode builds a unicode emoji from either the raw characters or a codepoint
// notation such as "U+1F602" (several "U+" groups may be chained, case-insensitive).
func EmojiFromUnicode(code string) (Emoji, error) {
	if err := checks.NotBlank(code, "Unicode"); err != nil {
		return Emoji{}, err
	}
	if strings.HasPrefix(code, "U+") || strings.HasPrefix(code, "u+") {
		decoded, err := decodeCodepoints(code)
		if err != nil {
			return Emoji{}, err
		}
		code = decoded
	}
	return Emoji{Name: code}, nil
}

// EmojiFromCustom builds a reference to a custom emoji.
func EmojiFromCustom(name string, id snowflake.ID, animated bool) (Emoji, error) {
	if err := checks.NotEmpty(name, "Name"); err != nil {
		return Emoji{}, err
	}
	if id == 0 {
		return Emoji{}, checks.Check(false, "Emoji ID may not be zero")
	}
	return Emoji{ID: id, Name: name, Animated: animated}, nil
}

// EmojiFromFormatted parses custom emoji markdown (<:name:id> or <a:name:id>), falling back to
// EmojiFromUnicode for anything else.
func EmojiFromFormatted(formatted string) (Emoji, error) {
	if m := customEmojiPattern.FindStringSubmatch(formatted); m != nil {
		id, err := snowflake.Parse(m[3])
		if err != nil {
			return Emoji{}, fmt.Errorf("failed to parse emoji id %q: %w", m[3], err)
		}
		return EmojiFromCustom(m[2], id, m[1] == "a")
	}
	return EmojiFromUnicode(formatted)
}

// EmojiFromMarkdown is EmojiFromFormatted under its older name.
func EmojiFromMarkdown(markdown string) (Emoji, error) {
	return EmojiFromFormatted(markdown)
}

// EmojiFromData decodes an emoji payload.
func EmojiFromData(data []byte) (Emoji, error) {
	var e Emoji
	if err := json.Unmarshal(data, &e); err != nil {
		return Emoji{}, fmt.Errorf("failed to decode emoji: %w", err)
	}
	return e, nil
}

// Type reports whether e is a unicode or a custom emoji.
func (e Emoji) Type() EmojiType {
	if e.ID != 0 {
		return EmojiTypeCustom
	}
	return EmojiTypeUnicode
}

// Formatted returns the markdown that renders e in a message.
func (e Emoji) Formatted() string {
	if e.Type() == EmojiTypeUnicode {
		return e.Name
	}
	prefix := "<:"
	if e.Animated {
		prefix = "<a:"
	}
	return prefix + e.Name + ":" + e.ID.String() + ">"
}

// AsMention is the same as Formatted.
func (e Emoji) AsMention() string {
	return e.Formatted()
}

// AsReactionCode returns the form used in reaction routes: the characters for unicode emojis
// and name:id for custom ones.
func (e Emoji) AsReactionCode() string {
	if e.Type() == EmojiTypeUnicode {
		return e.Name
	}
	return e.Name + ":" + e.ID.String()
}

// AsCodepoints returns the "U+xxxx" notation of a unicode emoji, or "" for custom emojis.
func (e Emoji) AsCodepoints() string {
	if e.Type() != EmojiTypeUnicode {
		return ""
	}
	var b strings.Builder
	for _, r := range e.Name {
		b.WriteString("U+")
		b.WriteString(strconv.FormatInt(int64(r), 16))
	}
	return b.String()
}

// ImageURL returns the CDN image of a custom emoji, or "" for unicode emojis.
func (e Emoji) ImageURL() string {
	if e.Type() != EmojiTypeCustom {
		return ""
	}
	ext := "png"
	if e.Animated {
		ext = "gif"
	}
	return fmt.Sprintf("%s/emojis/%s.%s", CDNURL, e.ID, ext)
}

var codepointSeparator = regexp.MustCompile(`\s*[uU]\+`)

func decodeCodepoints(code string) (string, error) {
	var b strings.Builder
	for _, part := range codepointSeparator.Split(code, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cp, err := strconv.ParseUint(part, 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return "", &checks.Error{Name: "Unicode", Reason: fmt.Sprintf("has an invalid codepoint %q", part)}
		}
		b.WriteRune(rune(cp))
	}
	return b.String(), nil
}
