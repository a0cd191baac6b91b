// Package discord contains the entity layer: read-only snapshots of Discord objects decoded from
// API payloads, the raw-key enums they use, and the value types (activities, emojis, icons,
// embeds, permissions) that action builders accept.
//
// Entities never hold a reference back to a client. Relations are plain snowflake fields that
// callers resolve through an explicit cache lookup.
package discord

import (
	"strconv"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

const (
	// CDNURL is the root of Discord's asset CDN.
	CDNURL = "https://cdn.discordapp.com"
	// AppURL is the root of Discord's web client, used for jump links.
	AppURL = "https://discord.com"
)

// Mentionable is implemented by every entity that can be referenced in message content.
type Mentionable interface {
	AsMention() string
}

// CreatedAt returns the creation time encoded in id.
func CreatedAt(id snowflake.ID) time.Time {
	return id.Time()
}

// UserMention formats a user mention for id.
func UserMention(id snowflake.ID) string { return "<@" + id.String() + ">" }

// RoleMention formats a role mention for id.
func RoleMention(id snowflake.ID) string { return "<@&" + id.String() + ">" }

// ChannelMention formats a channel mention for id.
func ChannelMention(id snowflake.ID) string { return "<#" + id.String() + ">" }

// decodeIntEnum decodes a JSON number (or null) into an enum through its key decoder,
// so values the library does not know yet become the enum's Unknown sentinel.
func decodeIntEnum[E any](data []byte, fromKey func(int) E) (E, error) {
	var zero E
	if string(data) == "null" {
		return fromKey(-1), nil
	}
	var key int
	if err := json.Unmarshal(data, &key); err != nil {
		// some payloads send small enums as strings
		var s string
		if err2 := json.Unmarshal(data, &s); err2 != nil {
			return zero, err
		}
		n, err2 := strconv.Atoi(s)
		if err2 != nil {
			return fromKey(-1), nil
		}
		key = n
	}
	return fromKey(key), nil
}

func decodeStringEnum[E any](data []byte, fromKey func(string) E) (E, error) {
	var zero E
	if string(data) == "null" {
		return fromKey(""), nil
	}
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return zero, err
	}
	return fromKey(key), nil
}

func nameOf[E comparable](names map[E]string, e E) string {
	if n, ok := names[e]; ok {
		return n
	}
	return "UNKNOWN"
}

func isKnown[E comparable](names map[E]string, e E) bool {
	_, ok := names[e]
	return ok
}
