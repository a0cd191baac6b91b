package discord

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

// CommandType is the kind of an application command.
type CommandType int

const (
	CommandTypeUnknown           CommandType = -1
	CommandTypeSlash             CommandType = 1
	CommandTypeUser              CommandType = 2
	CommandTypeMessage           CommandType = 3
	CommandTypePrimaryEntryPoint CommandType = 4
)

var commandTypeNames = map[CommandType]string{
	CommandTypeUnknown:           "UNKNOWN",
	CommandTypeSlash:             "SLASH",
	CommandTypeUser:              "USER",
	CommandTypeMessage:           "MESSAGE",
	CommandTypePrimaryEntryPoint: "PRIMARY_ENTRY_POINT",
}

func CommandTypeFromKey(key int) CommandType {
	if t := CommandType(key); isKnown(commandTypeNames, t) {
		return t
	}
	return CommandTypeUnknown
}

func (t CommandType) Key() int       { return int(t) }
func (t CommandType) String() string { return nameOf(commandTypeNames, t) }

func (t *CommandType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, CommandTypeFromKey)
	return
}

// OptionType is the value type of a command option.
type OptionType int

const (
	OptionTypeUnknown         OptionType = -1
	OptionTypeSubCommand      OptionType = 1
	OptionTypeSubCommandGroup OptionType = 2
	OptionTypeString          OptionType = 3
	OptionTypeInteger         OptionType = 4
	OptionTypeBoolean         OptionType = 5
	OptionTypeUser            OptionType = 6
	OptionTypeChannel         OptionType = 7
	OptionTypeRole            OptionType = 8
	OptionTypeMentionable     OptionType = 9
	OptionTypeNumber          OptionType = 10
	OptionTypeAttachment      OptionType = 11
)

var optionTypeNames = map[OptionType]string{
	OptionTypeUnknown:         "UNKNOWN",
	OptionTypeSubCommand:      "SUB_COMMAND",
	OptionTypeSubCommandGroup: "SUB_COMMAND_GROUP",
	OptionTypeString:          "STRING",
	OptionTypeInteger:         "INTEGER",
	OptionTypeBoolean:         "BOOLEAN",
	OptionTypeUser:            "USER",
	OptionTypeChannel:         "CHANNEL",
	OptionTypeRole:            "ROLE",
	OptionTypeMentionable:     "MENTIONABLE",
	OptionTypeNumber:          "NUMBER",
	OptionTypeAttachment:      "ATTACHMENT",
}

func OptionTypeFromKey(key int) OptionType {
	if t := OptionType(key); isKnown(optionTypeNames, t) {
		return t
	}
	return OptionTypeUnknown
}

func (t OptionType) Key() int       { return int(t) }
func (t OptionType) String() string { return nameOf(optionTypeNames, t) }

// CanSupportChoices reports whether options of this type may declare fixed choices.
func (t OptionType) CanSupportChoices() bool {
	return t == OptionTypeString || t == OptionTypeInteger || t == OptionTypeNumber
}

func (t *OptionType) UnmarshalJSON(data []byte) (err error) {
	*t, err = decodeIntEnum(data, OptionTypeFromKey)
	return
}

const (
	MaxCommandNameLength        = 32
	MaxCommandDescriptionLength = 100
	MaxCommandOptions           = 25
	MaxCommandChoices           = 25
	MaxChoiceNameLength         = 100
	MaxChoiceValueLength        = 100
)

var commandNamePattern = regexp.MustCompile(`^[-_\p{L}\p{N}\p{Devanagari}\p{Thai}]{1,32}$`)

// Command is a registered application command.
type Command struct {
	ID                       snowflake.ID    `json:"id"`
	Type                     CommandType     `json:"type"`
	ApplicationID            snowflake.ID    `json:"application_id"`
	GuildID                  snowflake.ID    `json:"guild_id,omitempty"`
	Name                     string          `json:"name"`
	Description              string          `json:"description"`
	Options                  []CommandOption `json:"options,omitempty"`
	DefaultMemberPermissions *Permissions    `json:"default_member_permissions,omitempty"`
	NSFW                     bool            `json:"nsfw,omitempty"`
	Version                  snowflake.ID    `json:"version"`
}

// IsGuildCommand reports whether the command is only registered in one guild.
func (c Command) IsGuildCommand() bool { return c.GuildID != 0 }

// AsMention formats a clickable mention of the command. Only slash commands can be mentioned.
func (c Command) AsMention() string {
	return "</" + c.Name + ":" + c.ID.String() + ">"
}

// SubcommandMention formats a mention of a subcommand (or group and subcommand) of c.
func (c Command) SubcommandMention(path ...string) string {
	return "</" + strings.Join(append([]string{c.Name}, path...), " ") + ":" + c.ID.String() + ">"
}

// CommandOption is one parameter, subcommand or subcommand group.
type CommandOption struct {
	Type         OptionType      `json:"type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Required     bool            `json:"required,omitempty"`
	Choices      []CommandChoice `json:"choices,omitempty"`
	Options      []CommandOption `json:"options,omitempty"`
	ChannelTypes []ChannelType   `json:"channel_types,omitempty"`
	MinValue     *float64        `json:"min_value,omitempty"`
	MaxValue     *float64        `json:"max_value,omitempty"`
	MinLength    *int            `json:"min_length,omitempty"`
	MaxLength    *int            `json:"max_length,omitempty"`
	Autocomplete bool            `json:"autocomplete,omitempty"`
}

// CommandChoice is a fixed value offered to the user. Value is a string, int64 or float64.
type CommandChoice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// CommandData is the payload used to create or overwrite a command.
type CommandData struct {
	Type                     CommandType     `json:"type"`
	Name                     string          `json:"name"`
	Description              string          `json:"description,omitempty"`
	Options                  []CommandOption `json:"options,omitempty"`
	DefaultMemberPermissions *Permissions    `json:"default_member_permissions,omitempty"`
	NSFW                     bool            `json:"nsfw,omitempty"`
}

// SlashCommand returns the data for a chat input command.
func SlashCommand(name, description string, options ...CommandOption) CommandData {
	return CommandData{Type: CommandTypeSlash, Name: name, Description: description, Options: options}
}

// ContextCommand returns the data for a user or message context menu command.
func ContextCommand(typ CommandType, name string) CommandData {
	return CommandData{Type: typ, Name: name}
}

// Validate checks the local constraints Discord enforces on command registration.
func (d CommandData) Validate() error {
	var errs []error
	switch d.Type {
	case CommandTypeSlash:
		errs = append(errs,
			validateOptionName(d.Name, "Name"),
			checks.InRange(d.Description, 1, MaxCommandDescriptionLength, "Description"),
			validateOptions(d.Options, "Options"),
		)
	case CommandTypeUser, CommandTypeMessage:
		errs = append(errs,
			checks.InRange(d.Name, 1, MaxCommandNameLength, "Name"),
			checks.Check(len(d.Options) == 0, "Context commands may not have options"),
		)
	default:
		errs = append(errs, checks.Check(false, "Cannot create a command of type %s", d.Type))
	}
	return errors.Join(errs...)
}

func validateOptionName(name, field string) error {
	return errors.Join(
		checks.InRange(name, 1, MaxCommandNameLength, field),
		checks.Matches(name, commandNamePattern, field),
		checks.Lowercase(name, field),
	)
}

func validateOptions(options []CommandOption, field string) error {
	errs := []error{checks.NotMore(options, MaxCommandOptions, field)}
	optional := false
	for i, o := range options {
		name := fmt.Sprintf("%s[%d]", field, i)
		errs = append(errs,
			validateOptionName(o.Name, name+".Name"),
			checks.InRange(o.Description, 1, MaxCommandDescriptionLength, name+".Description"),
			checks.NotMore(o.Choices, MaxCommandChoices, name+".Choices"),
		)
		if len(o.Choices) > 0 {
			errs = append(errs, checks.Check(o.Type.CanSupportChoices(), "%s of type %s cannot have choices", name, o.Type))
			for j, c := range o.Choices {
				errs = append(errs, checks.InRange(c.Name, 1, MaxChoiceNameLength, fmt.Sprintf("%s.Choices[%d].Name", name, j)))
				if s, ok := c.Value.(string); ok {
					errs = append(errs, checks.NotLonger(s, MaxChoiceValueLength, fmt.Sprintf("%s.Choices[%d].Value", name, j)))
				}
			}
		}
		switch o.Type {
		case OptionTypeSubCommand, OptionTypeSubCommandGroup:
			errs = append(errs, validateOptions(o.Options, name+".Options"))
		default:
			if !o.Required {
				optional = true
			} else if optional {
				errs = append(errs, checks.Check(false, "%s: required options must be placed before optional options", name))
			}
		}
	}
	return errors.Join(errs...)
}
