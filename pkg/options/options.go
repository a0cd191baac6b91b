// Package options provides configuration structures and utilities for the Discord bot.
package options

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/go-playground/validator/v10"

	"github.com/norio-nomura/discordkit/pkg/discord"
)

// Options holds configuration values for the Discord bot, loaded from environment variables or JSON.
type Options struct {
	DiscordActivityType string   `env:"DISCORD_ACTIVITY_TYPE" json:",omitempty" validate:"omitempty,oneof=playing streaming listening watching custom competing"`
	DiscordGuildIDs     []string `env:"DISCORD_GUILD_IDS" json:",omitempty" validate:"dive,number"`
	DiscordPlaying      string   `env:"DISCORD_PLAYING" json:",omitempty" validate:"omitempty,max=128"`
	DiscordStreamURL    string   `env:"DISCORD_STREAM_URL" json:",omitempty" validate:"omitempty,url"`
	DiscordToken        string   `env:"DISCORD_TOKEN" json:"," validate:"required"`
	LogFormat           string   `env:"LOG_FORMAT" json:"," validate:"oneof=text json"`
	LogLevel            string   `env:"LOG_LEVEL" json:"," validate:"oneof=debug info warn error"`
	MessageCacheSize    int      `env:"MESSAGE_CACHE_SIZE" json:"," validate:"min=0"`
	RestTimeoutSeconds  int      `env:"REST_TIMEOUT_SECONDS" json:"," validate:"min=1"`
}

// defaultOptions creates a new Options instance with default values.
func defaultOptions() *Options {
	return &Options{
		DiscordActivityType: "playing",
		LogFormat:           "text",
		LogLevel:            "info",
		MessageCacheSize:    1000,
		RestTimeoutSeconds:  10,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the options against their `validate` tags.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			errs := make([]error, 0, len(invalid))
			for _, fe := range invalid {
				errs = append(errs, fmt.Errorf("`%s` failed on the `%s` rule", fe.Namespace(), fe.Tag()))
			}
			return errors.Join(errs...)
		}
		return err
	}
	return nil
}

// FromEnv populates Options from environment variables dynamically.
// Returns an Options pointer or an error if required fields are missing or invalid.
func FromEnv() (*Options, error) {
	options := defaultOptions()
	v := reflect.ValueOf(options).Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		envKey := fieldType.Tag.Get("env")
		if envKey == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envKey)
		if !exists {
			continue
		}

		// Set the field value based on its type
		switch field.Kind() {
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				return nil, fmt.Errorf("unsupported slice type for %s", envKey)
			}
			field.Set(reflect.ValueOf(strings.Fields(envValue)))
		case reflect.String:
			field.SetString(strings.TrimSpace(envValue))
		case reflect.Int:
			intValue, err := strconv.Atoi(strings.TrimSpace(envValue))
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", envKey, err)
			}
			field.SetInt(int64(intValue))
		}

		// Remove the environment variable after reading it
		if err := os.Unsetenv(envKey); err != nil {
			return nil, fmt.Errorf("failed to unset environment variable %s: %w", envKey, err)
		}
	}

	if options.DiscordToken == "" {
		return nil, errors.New("`DISCORD_TOKEN` is missing in environment variables")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// FromJSON reads options encoded as JSON from r. Missing fields keep their defaults.
func FromJSON(r io.Reader) (*Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	options := defaultOptions()
	if err := json.Unmarshal(data, options); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if options.DiscordToken == "" {
		return nil, errors.New("`DISCORD_TOKEN` is missing in JSON")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// FromStdin reads JSON from standard input and populates Options.
func FromStdin() (*Options, error) {
	return FromJSON(os.Stdin)
}

var activityTypes = map[string]discord.ActivityType{
	"playing":   discord.ActivityTypePlaying,
	"streaming": discord.ActivityTypeStreaming,
	"listening": discord.ActivityTypeListening,
	"watching":  discord.ActivityTypeWatching,
	"custom":    discord.ActivityTypeCustomStatus,
	"competing": discord.ActivityTypeCompeting,
}

// Activity returns the presence activity, or false when DiscordPlaying is unset.
func (o *Options) Activity() (discord.Activity, bool, error) {
	if o.DiscordPlaying == "" {
		return discord.Activity{}, false, nil
	}
	typ, ok := activityTypes[o.DiscordActivityType]
	if !ok {
		typ = discord.ActivityTypeDefault
	}
	a, err := discord.ActivityOf(typ, o.DiscordPlaying, o.DiscordStreamURL)
	if err != nil {
		return discord.Activity{}, false, fmt.Errorf("failed to build activity: %w", err)
	}
	return a, true, nil
}

// GuildIDs returns the guilds to preload on ready. Nil means every guild.
func (o *Options) GuildIDs() ([]snowflake.ID, error) {
	if len(o.DiscordGuildIDs) == 0 {
		return nil, nil
	}
	ids := make([]snowflake.ID, 0, len(o.DiscordGuildIDs))
	for _, s := range o.DiscordGuildIDs {
		id, err := snowflake.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid guild ID %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (o *Options) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ExecWithPassingOptionsToStdin serializes the Options to JSON, sets up a pipe, and replaces the current process.
// This method can be used to re-execute the current process with options passed via stdin.
func (o *Options) ExecWithPassingOptionsToStdin() error {
	// Serialize options to JSON
	jsonData, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to serialize options to JSON: %w", err)
	}

	// Prepare arguments for execve
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := os.Args[0]
	args := slices.Insert(os.Args[1:], 0, "--stdin")
	env := os.Environ()

	// Create a pipe for stdin
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create pipe: %w", err)
	}
	// Redirect the pipe's read end to standard input
	if err = dup2(int(r.Fd()), int(os.Stdin.Fd())); err != nil {
		return fmt.Errorf("failed to redirect stdin: %w", err)
	}
	// Write JSON to the pipe
	if _, err = w.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write to pipe: %w", err)
	}
	// Close the write end of the pipe
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close pipe: %w", err)
	}

	// Replace the current process
	err = syscall.Exec(executable, append([]string{cmd}, args...), env)
	// If Exec returns, it means there was an error
	return fmt.Errorf("failed to exec process: %w", err)
}

// ContextWithRestTimeout creates a context with the REST timeout duration.
// This context can be used to enforce a timeout for REST API calls.
func (o *Options) ContextWithRestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := o.RestTimeoutSeconds
	if timeout <= 0 {
		timeout = defaultOptions().RestTimeoutSeconds
	}
	return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
}
