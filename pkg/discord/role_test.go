package discord

import (
	"slices"
	"testing"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
)

func TestRoleColorsClassification(t *testing.T) {
	const d = DefaultColorRaw
	values := []int{d, 0xFF0000}
	for _, p := range values {
		for _, s := range values {
			for _, tt := range values {
				c := RoleColors{p, s, tt}
				n := 0
				for _, ok := range []bool{c.IsDefault(), c.IsSolid(), c.IsGradient(), c.IsHolographic()} {
					if ok {
						n++
					}
				}
				assert.Equal(t, n, 1, "%+v", c)
			}
		}
	}

	assert.Assert(t, DefaultRoleColors.IsDefault())
	assert.Assert(t, SolidColors(0x00FF00).IsSolid())
	assert.Assert(t, GradientColors(1, 2).IsGradient())
	assert.Assert(t, HolographicColors().IsHolographic())
}

func TestRoleUnmarshal(t *testing.T) {
	t.Run("legacy color", func(t *testing.T) {
		var r Role
		assert.NilError(t, unmarshal(`{"id":"2","name":"mod","color":3447003,"position":3,"permissions":"8"}`, &r))
		assert.Assert(t, r.Colors.IsSolid())
		assert.Equal(t, r.Colors.Primary, 3447003)
		assert.Assert(t, r.Permissions.Has(PermissionAdministrator))
	})
	t.Run("no color", func(t *testing.T) {
		var r Role
		assert.NilError(t, unmarshal(`{"id":"2","name":"plain","color":0,"permissions":"0"}`, &r))
		assert.Assert(t, r.Colors.IsDefault())
	})
	t.Run("colors object", func(t *testing.T) {
		var r Role
		assert.NilError(t, unmarshal(`{"id":"2","name":"holo","color":11127295,"colors":{"primary_color":11127295,"secondary_color":16759788,"tertiary_color":16761760},"permissions":"0"}`, &r))
		assert.Assert(t, r.Colors.IsHolographic())

		assert.NilError(t, unmarshal(`{"id":"2","name":"grad","colors":{"primary_color":1,"secondary_color":2,"tertiary_color":null},"permissions":"0"}`, &r))
		assert.Assert(t, r.Colors.IsGradient())
	})
	t.Run("tags", func(t *testing.T) {
		var r Role
		assert.NilError(t, unmarshal(`{"id":"2","name":"Booster","permissions":"0","tags":{"premium_subscriber":null}}`, &r))
		assert.Assert(t, r.IsBoosterRole())
		assert.Assert(t, !r.Tags.IsBot())

		assert.NilError(t, unmarshal(`{"id":"3","name":"Bot","permissions":"0","managed":true,"tags":{"bot_id":"99"}}`, &r))
		assert.Assert(t, !r.IsBoosterRole())
		assert.Assert(t, r.Tags.IsBot())
	})
}

func TestRoleMarshal(t *testing.T) {
	r := Role{ID: 2, Name: "grad", Colors: GradientColors(1, 2), Permissions: PermissionsOf(PermissionKickMembers)}
	raw, err := json.Marshal(r)
	assert.NilError(t, err)
	var back Role
	assert.NilError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, back.Colors, r.Colors)
	assert.Equal(t, back.Permissions, r.Permissions)
}

func TestRoleCompare(t *testing.T) {
	guild := snowflake.ID(1)
	low := Role{ID: 10, GuildID: guild, Position: 1}
	high := Role{ID: 11, GuildID: guild, Position: 2}
	older := Role{ID: 5, GuildID: guild, Position: 2}

	assert.Assert(t, high.Compare(low) > 0)
	assert.Assert(t, older.Compare(high) > 0)
	assert.Assert(t, high.CanInteract(low))
	assert.Assert(t, !low.CanInteract(high))
	assert.Assert(t, !high.CanInteract(high))

	roles := []Role{low, high, older}
	slices.SortFunc(roles, func(a, b Role) int { return b.Compare(a) })
	assert.DeepEqual(t, []snowflake.ID{roles[0].ID, roles[1].ID, roles[2].ID}, []snowflake.ID{5, 11, 10})
}

func TestRoleIconURL(t *testing.T) {
	assert.Equal(t, Role{ID: 7}.IconURL(), "")
	assert.Equal(t, Role{ID: 7, Icon: "abc"}.IconURL(), "https://cdn.discordapp.com/role-icons/7/abc.png")
}
