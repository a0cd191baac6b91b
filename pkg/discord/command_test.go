package discord

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/norio-nomura/discordkit/pkg/checks"
)

func TestCommandDataValidate(t *testing.T) {
	ok := SlashCommand("ping", "Replies with pong",
		CommandOption{Type: OptionTypeString, Name: "target", Description: "Who", Required: true,
			Choices: []CommandChoice{{Name: "me", Value: "me"}}},
		CommandOption{Type: OptionTypeBoolean, Name: "loud", Description: "Shout"},
	)
	assert.NilError(t, ok.Validate())
	assert.NilError(t, SlashCommand("日本語", "non-latin names are allowed").Validate())
	assert.NilError(t, ContextCommand(CommandTypeUser, "Show Profile").Validate())

	tests := []struct {
		name string
		data CommandData
		want string
	}{
		{"uppercase", SlashCommand("Ping", "d"), "lowercase"},
		{"space", SlashCommand("two words", "d"), "must match regex"},
		{"too long", SlashCommand(strings.Repeat("a", 33), "d"), "between 1 and 32"},
		{"no description", SlashCommand("ping", ""), "Description"},
		{"choices on boolean", SlashCommand("ping", "d", CommandOption{Type: OptionTypeBoolean, Name: "b", Description: "d",
			Choices: []CommandChoice{{Name: "yes", Value: "y"}}}), "cannot have choices"},
		{"required after optional", SlashCommand("ping", "d",
			CommandOption{Type: OptionTypeString, Name: "a", Description: "d"},
			CommandOption{Type: OptionTypeString, Name: "b", Description: "d", Required: true}), "required options"},
		{"nested subcommand", SlashCommand("ping", "d", CommandOption{Type: OptionTypeSubCommand, Name: "sub", Description: "d",
			Options: []CommandOption{{Type: OptionTypeString, Name: "BAD", Description: "d"}}}), "Options[0].Options[0].Name"},
		{"context with options", CommandData{Type: CommandTypeMessage, Name: "x", Options: []CommandOption{{}}}, "may not have options"},
		{"unknown type", CommandData{Type: CommandTypeUnknown, Name: "x"}, "Cannot create"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			assert.ErrorIs(t, err, checks.ErrIllegalArgument)
			assert.Assert(t, cmp.ErrorContains(err, tt.want))
		})
	}

	many := make([]CommandOption, MaxCommandOptions+1)
	for i := range many {
		many[i] = CommandOption{Type: OptionTypeString, Name: "o", Description: "d"}
	}
	assert.Assert(t, cmp.ErrorContains(SlashCommand("ping", "d", many...).Validate(), "more than 25"))
}

func TestCommandMention(t *testing.T) {
	c := Command{ID: 42, Name: "perm"}
	assert.Equal(t, c.AsMention(), "</perm:42>")
	assert.Equal(t, c.SubcommandMention("role", "view"), "</perm role view:42>")
}
