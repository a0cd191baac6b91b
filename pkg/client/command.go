package client

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/discord"
	"github.com/norio-nomura/discordkit/pkg/rest"
)

// UpsertCommand creates or overwrites the command named data.Name in guildID, or globally
// when guildID is 0. The data is validated before anything is sent.
func (c *Client) UpsertCommand(guildID snowflake.ID, data discord.CommandData) *rest.Action[discord.Command] {
	if err := data.Validate(); err != nil {
		return rest.Failed[discord.Command](err)
	}
	appID, ok := c.ApplicationID()
	if !ok {
		return rest.Failed[discord.Command](ErrApplicationUnknown)
	}
	if guildID == 0 {
		return newAction(c, rest.CreateGlobalCommand, data, rest.Decode[discord.Command](), appID)
	}
	return newAction(c, rest.CreateGuildCommand, data, rest.Decode[discord.Command](), appID, guildID)
}
