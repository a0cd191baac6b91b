package discord

import (
	"time"

	disgodiscord "github.com/disgoorg/disgo/discord"
)

// TimeFormat is the style letter of a markdown timestamp (<t:unix:style>).
type TimeFormat string

const (
	TimeFormatTimeShort     TimeFormat = "t"
	TimeFormatTimeLong      TimeFormat = "T"
	TimeFormatDateShort     TimeFormat = "d"
	TimeFormatDateLong      TimeFormat = "D"
	TimeFormatDateTimeShort TimeFormat = "f"
	TimeFormatDateTimeLong  TimeFormat = "F"
	TimeFormatRelative      TimeFormat = "R"

	TimeFormatDefault = TimeFormatDateTimeShort
)

// Format renders t as a markdown timestamp in this style.
func (f TimeFormat) Format(t time.Time) string {
	return disgodiscord.TimestampStyle(f).FormatTime(t)
}

// Timestamp is a parsed markdown timestamp.
type Timestamp struct {
	Format TimeFormat
	Time   time.Time
}

func (t Timestamp) String() string {
	return t.Format.Format(t.Time)
}

// ParseTimestamp parses the first markdown timestamp in s. A missing style means TimeFormatDefault.
func ParseTimestamp(s string) (Timestamp, bool) {
	ts, err := disgodiscord.ParseTimestamp(s)
	if err != nil {
		return Timestamp{}, false
	}
	format := TimeFormat(ts.TimestampStyle)
	if format == "" {
		format = TimeFormatDefault
	}
	return Timestamp{Format: format, Time: ts.Time}, true
}
