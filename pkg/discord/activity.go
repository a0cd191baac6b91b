package discord

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

// ActivityType is the kind of a presence activity.
type ActivityType int

const (
	ActivityTypePlaying ActivityType = iota
	ActivityTypeStreaming
	ActivityTypeListening
	ActivityTypeWatching
	ActivityTypeCustomStatus
	ActivityTypeCompeting

	// ActivityTypeDefault is what unknown keys and non-streaming URLs resolve to.
	ActivityTypeDefault = ActivityTypePlaying
)

var activityTypeNames = map[ActivityType]string{
	ActivityTypePlaying:      "PLAYING",
	ActivityTypeStreaming:    "STREAMING",
	ActivityTypeListening:    "LISTENING",
	ActivityTypeWatching:     "WATCHING",
	ActivityTypeCustomStatus: "CUSTOM_STATUS",
	ActivityTypeCompeting:    "COMPETING",
}

// ActivityTypeFromKey maps a raw activity type to its constant, defaulting to ActivityTypeDefault.
func ActivityTypeFromKey(key int) ActivityType {
	if t := ActivityType(key); isKnown(activityTypeNames, t) {
		return t
	}
	return ActivityTypeDefault
}

// Key returns the raw API value.
func (t ActivityType) Key() int { return int(t) }

func (t ActivityType) String() string { return nameOf(activityTypeNames, t) }

func (t *ActivityType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, ActivityTypeFromKey)
	return
}

// MaxActivityNameLength is the longest name Discord accepts for an activity.
const MaxActivityNameLength = 128

var streamingURLPattern = regexp.MustCompile(`^https?://(www\.)?(twitch\.tv/|youtube\.com/watch\?v=).+`)

// IsValidStreamingURL reports whether url points at a platform Discord renders as a stream.
func IsValidStreamingURL(url string) bool {
	return url != "" && streamingURLPattern.MatchString(url)
}

// Activity is a presence activity, either received from the gateway or built for a presence update.
type Activity struct {
	Name       string       `json:"name"`
	Type       ActivityType `json:"type"`
	URL        string       `json:"url,omitempty"`
	State      string       `json:"state,omitempty"`
	Details    string       `json:"details,omitempty"`
	Timestamps *Timestamps  `json:"timestamps,omitempty"`
	Emoji      *Emoji       `json:"emoji,omitempty"`
	CreatedAt  int64        `json:"created_at,omitempty"`
}

// Playing returns a PLAYING activity.
func Playing(name string) (Activity, error) {
	return newActivity(name, "", ActivityTypePlaying, checks.NotBlank)
}

// Streaming returns a STREAMING activity when url is a twitch or youtube stream,
// and a PLAYING activity otherwise.
func Streaming(name, url string) (Activity, error) {
	typ := ActivityTypeDefault
	if IsValidStreamingURL(url) {
		typ = ActivityTypeStreaming
	}
	return newActivity(name, url, typ, checks.NotEmpty)
}

// Listening returns a LISTENING activity.
func Listening(name string) (Activity, error) {
	return newActivity(name, "", ActivityTypeListening, checks.NotBlank)
}

// Watching returns a WATCHING activity.
func Watching(name string) (Activity, error) {
	return newActivity(name, "", ActivityTypeWatching, checks.NotBlank)
}

// Competing returns a COMPETING activity.
func Competing(name string) (Activity, error) {
	return newActivity(name, "", ActivityTypeCompeting, checks.NotBlank)
}

// CustomStatus returns a custom status. The text is sent as the state, with a fixed name.
func CustomStatus(state string) (Activity, error) {
	a, err := newActivity(state, "", ActivityTypeCustomStatus, checks.NotBlank)
	if err != nil {
		return a, err
	}
	a.State = a.Name
	a.Name = "Custom Status"
	return a, nil
}

// ActivityOf builds an activity of the given type. url is only used for streaming.
func ActivityOf(typ ActivityType, name, url string) (Activity, error) {
	switch typ {
	case ActivityTypePlaying:
		return Playing(name)
	case ActivityTypeStreaming:
		return Streaming(name, url)
	case ActivityTypeListening:
		return Listening(name)
	case ActivityTypeWatching:
		return Watching(name)
	case ActivityTypeCustomStatus:
		return CustomStatus(name)
	case ActivityTypeCompeting:
		return Competing(name)
	}
	return Activity{}, errors.New("activity type " + typ.String() + " is not supported")
}

func newActivity(name, url string, typ ActivityType, notEmpty func(string, string) error) (Activity, error) {
	if err := notEmpty(name, "Name"); err != nil {
		return Activity{}, err
	}
	name = strings.TrimSpace(name)
	if err := checks.NotLonger(name, MaxActivityNameLength, "Name"); err != nil {
		return Activity{}, err
	}
	a := Activity{Name: name, Type: typ}
	if typ == ActivityTypeStreaming {
		a.URL = url
	}
	return a, nil
}

// WithTimestamps returns a copy of a with start/end timestamps set. Zero times are left out.
func (a Activity) WithTimestamps(start, end time.Time) Activity {
	ts := Timestamps{}
	if !start.IsZero() {
		ts.Start = start.UnixMilli()
	}
	if !end.IsZero() {
		ts.End = end.UnixMilli()
	}
	a.Timestamps = &ts
	return a
}

// IsRich reports whether the activity carries rich presence details or timestamps.
func (a Activity) IsRich() bool {
	return a.Details != "" || a.Timestamps != nil || (a.State != "" && a.Type != ActivityTypeCustomStatus)
}

// Timestamps holds activity start and end times in unix milliseconds. Zero means unset.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// StartTime returns the start time, or the zero time if unset.
func (t Timestamps) StartTime() time.Time {
	if t.Start == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.Start)
}

// EndTime returns the end time, or the zero time if unset.
func (t Timestamps) EndTime() time.Time {
	if t.End == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.End)
}

// Remaining returns how long until the activity ends, or 0 when there is no end or it has passed.
func (t Timestamps) Remaining(now time.Time) time.Duration {
	if t.End == 0 {
		return 0
	}
	d := t.EndTime().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Elapsed returns how long the activity has been running, or 0 when there is no start.
func (t Timestamps) Elapsed(now time.Time) time.Duration {
	if t.Start == 0 {
		return 0
	}
	d := now.Sub(t.StartTime())
	if d < 0 {
		return 0
	}
	return d
}
