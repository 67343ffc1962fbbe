// Package reqs evaluates requirements against context snapshots and decides
// whether two requirements can never hold together.
package reqs

import (
	"slices"
	"strconv"

	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// Perspective selects whose knowledge an evaluation uses.
type Perspective int

const (
	// Omniscient sees every attribute.
	Omniscient Perspective = iota
	// ActorKnowledge hides what the acting side cannot see. Hidden
	// attributes evaluate to Maybe.
	ActorKnowledge
)

// Evaluator decides a single requirement for the self side of an
// interaction. other is the counterpart, used by relational kinds.
type Evaluator interface {
	Eval(req types.Requirement, self, other *types.Context, p Perspective) tristate.Value
}

// Standard evaluates every requirement kind this package knows.
type Standard struct{}

// Eval implements Evaluator.
func (Standard) Eval(req types.Requirement, self, other *types.Context, p Perspective) tristate.Value {
	has := holds(req, self, other, p)
	if req.Present {
		return has
	}
	return tristate.Not(has)
}

// holds tests the positive form of req.
func holds(req types.Requirement, self, other *types.Context, p Perspective) tristate.Value {
	if self == nil {
		return tristate.No
	}
	hidden := func(visible bool) bool { return p == ActorKnowledge && !visible }
	vis := self.Visibility

	switch req.Kind {
	case types.ReqDiplRel:
		return tristate.FromBool(diplRel(req.Value, self, other))

	case types.ReqUnitFlag:
		ut := unitType(self)
		if ut == nil {
			return tristate.No
		}
		if self.Unit != nil && hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(slices.Contains(ut.Flags, req.Value))

	case types.ReqUnitClassFlag:
		ut := unitType(self)
		if ut == nil {
			return tristate.No
		}
		if self.Unit != nil && hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(slices.Contains(ut.ClassFlags, req.Value))

	case types.ReqUnitType:
		ut := unitType(self)
		if ut == nil {
			return tristate.No
		}
		if self.Unit != nil && hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(ut.Name == req.Value)

	case types.ReqUnitState:
		u := self.Unit
		if u == nil {
			return tristate.No
		}
		if hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(unitState(u, req.Value))

	case types.ReqActivity:
		u := self.Unit
		if u == nil {
			return tristate.No
		}
		if hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(u.Activity == req.Value)

	case types.ReqMinMoves:
		u := self.Unit
		if u == nil {
			return tristate.No
		}
		// Moves left are only visible to the owner.
		if p == ActorKnowledge && !sameOwner(self, other) {
			return tristate.Maybe
		}
		return tristate.FromBool(u.MovesLeft >= atoi(req.Value))

	case types.ReqMinVeteran:
		u := self.Unit
		if u == nil {
			return tristate.No
		}
		if hidden(vis.Unit) {
			return tristate.Maybe
		}
		return tristate.FromBool(u.Veteran >= atoi(req.Value))

	case types.ReqCityTile:
		t := self.Tile
		if t == nil {
			return tristate.No
		}
		if hidden(vis.KnowsTile) {
			return tristate.Maybe
		}
		switch req.Value {
		case "Center":
			return tristate.FromBool(t.City != "")
		case "Claimed":
			return tristate.FromBool(t.Owner != "")
		}
		return tristate.No

	case types.ReqTerrainFlag:
		t := self.Tile
		if t == nil {
			return tristate.No
		}
		if hidden(vis.KnowsTile) {
			return tristate.Maybe
		}
		return tristate.FromBool(slices.Contains(t.TerrainFlags, req.Value))

	case types.ReqNation:
		if self.Player == nil {
			return tristate.No
		}
		return tristate.FromBool(self.Player.Nation == req.Value)

	case types.ReqTech:
		if self.Player == nil {
			return tristate.No
		}
		if p == ActorKnowledge && !seesTechs(other, self) {
			return tristate.Maybe
		}
		return tristate.FromBool(slices.Contains(self.Player.Techs, req.Value))

	case types.ReqBuilding:
		if self.City == nil {
			return tristate.No
		}
		if hidden(vis.CityInternals) {
			return tristate.Maybe
		}
		return tristate.FromBool(slices.Contains(self.City.Buildings, req.Value))

	case types.ReqMaxTileUnits:
		t := self.Tile
		if t == nil {
			return tristate.No
		}
		if hidden(vis.Tile) {
			return tristate.Maybe
		}
		return tristate.FromBool(len(t.Units) <= atoi(req.Value))

	default:
		return tristate.No
	}
}

// EvalVector returns the conjunction of vec. An empty vector is Yes.
func EvalVector(ev Evaluator, vec types.RequirementVector, self, other *types.Context, p Perspective) tristate.Value {
	out := tristate.Yes
	for _, r := range vec {
		out = tristate.And(out, ev.Eval(r, self, other, p))
		if out == tristate.No {
			return tristate.No
		}
	}
	return out
}

// UnitType returns the unit type of a context, preferring the unit's own.
func UnitType(c *types.Context) *types.UnitType {
	return unitType(c)
}

func unitType(c *types.Context) *types.UnitType {
	if c.Unit != nil && c.Unit.Type != nil {
		return c.Unit.Type
	}
	return c.UnitType
}

func unitState(u *types.Unit, state string) bool {
	switch state {
	case "Transported":
		return u.Transported
	case "Transporting":
		return u.Transporting
	case "OnLivableTile":
		return u.OnLivable
	case "OnNativeTile":
		return u.OnNative
	case "HasHomeCity":
		return u.HomeCity != ""
	case "Paradropped":
		return u.Paradropped
	}
	return false
}

func diplRel(value string, self, other *types.Context) bool {
	if self.Player == nil || other == nil || other.Player == nil {
		return false
	}
	if value == "Foreign" {
		return self.Player.ID != other.Player.ID
	}
	if self.Player.ID == other.Player.ID {
		return false
	}
	rel := self.Player.Relations[other.Player.ID]
	switch value {
	case "Has real embassy":
		return rel.RealEmbassy
	case "Has contact":
		return rel.Contact
	case types.DiplNoContact:
		return rel.State == "" || rel.State == types.DiplNoContact
	}
	return rel.State == value
}

func sameOwner(self, other *types.Context) bool {
	return self.Player != nil && other != nil && other.Player != nil &&
		self.Player.ID == other.Player.ID
}

// seesTechs reports whether viewer can see the techs of owner.
func seesTechs(viewer, owner *types.Context) bool {
	if sameOwner(viewer, owner) {
		return true
	}
	if viewer == nil || viewer.Player == nil || owner.Player == nil {
		return false
	}
	return viewer.Player.Relations[owner.Player.ID].SeesTechs
}

// atoi converts a requirement value to int. Values are checked at load.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
