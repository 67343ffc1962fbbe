// Package hardreq implements the structural checks an action must pass
// before any authored enabler is considered. Enablers can only narrow what
// these checks allow.
package hardreq

import (
	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// input is everything a gate looks at.
type input struct {
	settings   types.Settings
	action     *actions.Action
	actor      *types.Context
	target     *types.Context
	omniscient bool
}

// hidden reports whether the acting side lacks a piece of knowledge that
// an omniscient caller would have.
func (in *input) hidden(visible bool) bool {
	return !in.omniscient && !visible
}

// Possible runs every structural check for the action. Without
// omniscience the result is Maybe when a check depends on something the
// actor cannot see.
func Possible(rs *ruleset.Ruleset, a *actions.Action, actor, target *types.Context, omniscient bool) tristate.Value {
	v, _ := run(rs, a, actor, target, omniscient)
	return v
}

// Blocker names the first check that rules the action out, or returns ""
// when none does.
func Blocker(rs *ruleset.Ruleset, a *actions.Action, actor, target *types.Context, omniscient bool) string {
	_, g := run(rs, a, actor, target, omniscient)
	if g == nil {
		return ""
	}
	return g.String()
}

// Checks lists the names of the checks an action is subject to.
func Checks(a *actions.Action) []string {
	var out []string
	for _, g := range generic {
		out = append(out, g.String())
	}
	for _, g := range byResult[a.Result] {
		out = append(out, g.String())
	}
	return out
}

func run(rs *ruleset.Ruleset, a *actions.Action, actor, target *types.Context, omniscient bool) (tristate.Value, gate) {
	if a == nil || actor == nil || target == nil {
		return tristate.No, targetPresent{}
	}
	in := &input{action: a, actor: actor, target: target, omniscient: omniscient}
	if rs != nil {
		in.settings = rs.Settings
	}

	out := tristate.Yes
	for _, list := range [][]gate{generic, byResult[a.Result]} {
		for _, g := range list {
			out = tristate.And(out, g.check(in))
			if out == tristate.No {
				return tristate.No, g
			}
		}
	}
	return out, nil
}

// IsPossible is false only when the action is known to be structurally
// impossible.
func IsPossible(rs *ruleset.Ruleset, a *actions.Action, actor, target *types.Context, omniscient bool) bool {
	return Possible(rs, a, actor, target, omniscient) != tristate.No
}

// Distance is the real map distance between two positions.
func Distance(a, b types.Pos) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// position returns where a context is located.
func position(c *types.Context) (types.Pos, bool) {
	switch {
	case c.Tile != nil:
		return types.Pos{X: c.Tile.X, Y: c.Tile.Y}, true
	case c.City != nil:
		return types.Pos{X: c.City.X, Y: c.City.Y}, true
	}
	return types.Pos{}, false
}

// ownerOf returns the player owning the entity an action targets. A unit
// stack narrowed to one of its units is owned by that unit's owner.
func ownerOf(c *types.Context, kind types.TargetKind) string {
	switch {
	case kind == types.TargetCity && c.City != nil:
		return c.City.Owner
	case (kind == types.TargetUnit || kind == types.TargetUnits) && c.Unit != nil:
		return c.Unit.Owner
	case (kind == types.TargetTile || kind == types.TargetUnits) && c.Tile != nil && c.Tile.Owner != "":
		return c.Tile.Owner
	case c.Player != nil:
		return c.Player.ID
	}
	return ""
}

func actorID(c *types.Context) string {
	if c.Player != nil {
		return c.Player.ID
	}
	if c.Unit != nil {
		return c.Unit.Owner
	}
	return ""
}

func relation(actor *types.Context, other string) types.Relation {
	if actor.Player == nil {
		return types.Relation{}
	}
	return actor.Player.Relations[other]
}

func atWar(actor *types.Context, other string) bool {
	return relation(actor, other).State == types.DiplWar
}

func allied(actor *types.Context, other string) bool {
	if other == actorID(actor) {
		return true
	}
	s := relation(actor, other).State
	return s == types.DiplAlliance || s == types.DiplTeam
}

func actorType(in *input) *types.UnitType {
	return reqs.UnitType(in.actor)
}
