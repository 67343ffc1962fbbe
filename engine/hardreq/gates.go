package hardreq

import (
	"slices"

	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// gate is one structural check. The set of gates is closed.
type gate interface {
	check(in *input) tristate.Value
	String() string
}

// generic gates run for every action, in order.
var generic = []gate{
	targetPresent{},
	distanceWindow{},
	noSelfTarget{},
	unitSeen{},
	cityContact{},
}

// foreignResults may never target the actor's own side.
var foreignResults = []types.ActionResult{
	types.ResultEstablishEmbassy, types.ResultInvestigateCity, types.ResultStealGold,
	types.ResultStealMaps, types.ResultStealTech, types.ResultTargetedStealTech,
	types.ResultInciteCity, types.ResultBribeUnit, types.ResultCaptureUnits,
	types.ResultConquerCity,
}

// byResult holds the gates specific to each action result. Every result
// has an entry.
var byResult = map[types.ActionResult][]gate{
	types.ResultEstablishEmbassy:     {foreignOnly{}, noRealEmbassy{}},
	types.ResultInvestigateCity:      {foreignOnly{}},
	types.ResultPoisonCity:           {},
	types.ResultStealGold:            {foreignOnly{}, victimHasGold{}},
	types.ResultSabotageCity:         {},
	types.ResultTargetedSabotageCity: {},
	types.ResultStealTech:            {foreignOnly{}},
	types.ResultTargetedStealTech:    {foreignOnly{}, techsVisible{}},
	types.ResultInciteCity:           {foreignOnly{}},
	types.ResultTradeRoute:           {needsHomeCity{}, canTrade{route: true}},
	types.ResultMarketplace:          {needsHomeCity{}, canTrade{}},
	types.ResultHelpWonder:           {helpWonder{}},
	types.ResultBribeUnit:            {foreignOnly{}, uniqueNotHeld{}},
	types.ResultSabotageUnit:         {},
	types.ResultCaptureUnits:         {foreignOnly{}, uniqueNotHeld{}},
	types.ResultFoundCity:            {foundCity{}},
	types.ResultJoinCity:             {actorPopCost{}, joinCity{}},
	types.ResultStealMaps:            {foreignOnly{}},
	types.ResultBombard:              {actorBombardRate{}, bombardAtWar{}},
	types.ResultSpyNuke:              {},
	types.ResultNuke:                 {nukeTarget{}},
	types.ResultDestroyCity:          {},
	types.ResultExpelUnit:            {},
	types.ResultRecycleUnit:          {},
	types.ResultDisbandUnit:          {},
	types.ResultHomeCity:             {newHomeCity{}},
	types.ResultUpgradeUnit:          {actorUpgradePath{}, upgradePossible{}},
	types.ResultParadrop:             {paradropReady{}, tileKnown{}},
	types.ResultParadropConquer:      {paradropReady{}, tileKnown{}},
	types.ResultAirlift:              {airliftCapacity{}},
	types.ResultAttack:               {actorAttackStrength{}, attackFromNative{}, attackable{}},
	types.ResultConquerCity:          {foreignOnly{}},
	types.ResultFortify:              {},
	types.ResultUnitMove:             {},
	types.ResultTransportBoard:       {},
	types.ResultTransportEmbark:      {},
	types.ResultTransportUnload:      {},
	types.ResultTransportDisembark:   {},
}

// targetPresent: the target context carries the entity the action targets.
type targetPresent struct{}

func (targetPresent) String() string { return "target present" }

func (targetPresent) check(in *input) tristate.Value {
	t := in.target
	switch in.action.TargetKind {
	case types.TargetCity:
		return tristate.FromBool(t.City != nil)
	case types.TargetUnit:
		return tristate.FromBool(t.Unit != nil)
	case types.TargetUnits:
		return tristate.FromBool(t.Tile != nil && len(t.Tile.Units) > 0)
	case types.TargetTile, types.TargetExtras:
		return tristate.FromBool(t.Tile != nil)
	}
	return tristate.Yes
}

// distanceWindow: the target lies within the action's distance window.
type distanceWindow struct{}

func (distanceWindow) String() string { return "distance" }

func (distanceWindow) check(in *input) tristate.Value {
	if in.action.TargetKind == types.TargetSelf {
		return tristate.Yes
	}
	from, ok1 := position(in.actor)
	to, ok2 := position(in.target)
	if !ok1 || !ok2 {
		return tristate.Yes
	}
	return tristate.FromBool(in.action.DistanceAccepted(Distance(from, to)))
}

// noSelfTarget: a unit can only act on itself through self targeted actions.
type noSelfTarget struct{}

func (noSelfTarget) String() string { return "not self" }

func (noSelfTarget) check(in *input) tristate.Value {
	if in.action.TargetKind == types.TargetSelf {
		return tristate.Yes
	}
	a, t := in.actor.Unit, in.target.Unit
	return tristate.FromBool(a == nil || t == nil || a.ID != t.ID)
}

// unitSeen: a unit target must be visible to the actor.
type unitSeen struct{}

func (unitSeen) String() string { return "target unit seen" }

func (unitSeen) check(in *input) tristate.Value {
	if in.action.TargetKind != types.TargetUnit {
		return tristate.Yes
	}
	return tristate.FromBool(!in.hidden(in.target.Visibility.Unit))
}

// cityContact: a foreign city can only be targeted once its owner has been
// met or the city itself is known. Knowing a target exists is part of the
// game state, so this holds under omniscience too.
type cityContact struct{}

func (cityContact) String() string { return "city known" }

func (cityContact) check(in *input) tristate.Value {
	if in.action.TargetKind != types.TargetCity {
		return tristate.Yes
	}
	owner := ownerOf(in.target, types.TargetCity)
	if owner == "" || owner == actorID(in.actor) {
		return tristate.Yes
	}
	return tristate.FromBool(relation(in.actor, owner).Contact || in.target.Visibility.City)
}

// foreignOnly: the target is not owned by the actor's side.
type foreignOnly struct{}

func (foreignOnly) String() string { return "foreign target" }

func (foreignOnly) check(in *input) tristate.Value {
	if in.action.TargetKind == types.TargetUnits && in.target.Unit == nil && in.target.Tile != nil {
		// The whole stack: no unit on the tile may be the actor's own.
		for _, u := range in.target.Tile.Units {
			if u != nil && u.Owner == actorID(in.actor) {
				return tristate.No
			}
		}
		return tristate.Yes
	}
	owner := ownerOf(in.target, in.action.TargetKind)
	return tristate.FromBool(owner == "" || owner != actorID(in.actor))
}

// noRealEmbassy: an embassy cannot be established twice.
type noRealEmbassy struct{}

func (noRealEmbassy) String() string { return "no real embassy" }

func (noRealEmbassy) check(in *input) tristate.Value {
	return tristate.FromBool(!relation(in.actor, ownerOf(in.target, types.TargetCity)).RealEmbassy)
}

// techsVisible: the actor must see the target's techs to pick one.
type techsVisible struct{}

func (techsVisible) String() string { return "target techs visible" }

func (techsVisible) check(in *input) tristate.Value {
	owner := ownerOf(in.target, types.TargetCity)
	return tristate.FromBool(owner == actorID(in.actor) || relation(in.actor, owner).SeesTechs)
}

// victimHasGold: there is gold to steal.
type victimHasGold struct{}

func (victimHasGold) String() string { return "victim has gold" }

func (victimHasGold) check(in *input) tristate.Value {
	p := in.target.Player
	return tristate.FromBool(p != nil && p.Gold > 0)
}

// needsHomeCity: the actor unit has a home city.
type needsHomeCity struct{}

func (needsHomeCity) String() string { return "actor has home city" }

func (needsHomeCity) check(in *input) tristate.Value {
	return tristate.FromBool(in.actor.Unit != nil && in.actor.Unit.HomeCity != "")
}

// canTrade: the actor's home city and the target city can trade. route
// also requires room for a new trade route. The actor context's City is
// the unit's home city.
type canTrade struct {
	route bool
}

func (g canTrade) String() string {
	if g.route {
		return "trade route possible"
	}
	return "cities can trade"
}

func (g canTrade) check(in *input) tristate.Value {
	home, dest := in.actor.City, in.target.City
	if home == nil || dest == nil || home.ID == dest.ID {
		return tristate.No
	}
	dist := Distance(types.Pos{X: home.X, Y: home.Y}, types.Pos{X: dest.X, Y: dest.Y})
	if dist < in.settings.TradeMinDist {
		return tristate.No
	}
	if !g.route {
		return tristate.Yes
	}
	if slices.Contains(home.TradePartners, dest.ID) {
		return tristate.No
	}
	if home.MaxTradeRoutes > 0 && len(home.TradePartners) >= home.MaxTradeRoutes {
		return tristate.No
	}
	if in.hidden(in.target.Visibility.CityInternals) {
		return tristate.Maybe
	}
	if dest.MaxTradeRoutes > 0 && len(dest.TradePartners) >= dest.MaxTradeRoutes {
		return tristate.No
	}
	return tristate.Yes
}

// helpWonder: the target city is building something that still needs
// shields.
type helpWonder struct{}

func (helpWonder) String() string { return "production needs help" }

func (helpWonder) check(in *input) tristate.Value {
	if in.hidden(in.target.Visibility.CityInternals) {
		return tristate.Maybe
	}
	c := in.target.City
	return tristate.FromBool(c.ProductionCost > 0 && c.ShieldStock < c.ProductionCost)
}

// uniqueNotHeld: the actor side cannot gain a second unit of a unique type.
type uniqueNotHeld struct{}

func (uniqueNotHeld) String() string { return "unique unit not held" }

func (uniqueNotHeld) check(in *input) tristate.Value {
	var victims []*types.Unit
	if in.action.TargetKind == types.TargetUnit {
		victims = []*types.Unit{in.target.Unit}
		if in.hidden(in.target.Visibility.Unit) {
			return tristate.Maybe
		}
	} else {
		if in.hidden(in.target.Visibility.Tile) {
			return tristate.Maybe
		}
		victims = in.target.Tile.Units
	}
	if in.actor.Player == nil {
		return tristate.Yes
	}
	for _, u := range victims {
		if u != nil && u.Type != nil && u.Type.Unique && slices.Contains(in.actor.Player.UniqueUnits, u.Type.Name) {
			return tristate.No
		}
	}
	return tristate.Yes
}

// foundCity: a new city may be placed on the target tile.
type foundCity struct{}

func (foundCity) String() string { return "city can be founded" }

func (foundCity) check(in *input) tristate.Value {
	if in.settings.PreventNewCities {
		return tristate.No
	}
	t := in.target.Tile
	if in.hidden(in.target.Visibility.KnowsTile) {
		return tristate.Maybe
	}
	if t.City != "" || slices.Contains(t.TerrainFlags, "NoCities") {
		return tristate.No
	}
	here := types.Pos{X: t.X, Y: t.Y}
	for _, p := range t.NearbyCities {
		if Distance(here, p) < in.settings.CityMinDist {
			return tristate.No
		}
	}
	if in.hidden(in.target.Visibility.Surroundings) {
		return tristate.Maybe
	}
	return tristate.Yes
}

// joinCity: the target city may grow by the actor's population cost.
type joinCity struct{}

func (joinCity) String() string { return "city can grow" }

func (joinCity) check(in *input) tristate.Value {
	if in.hidden(in.target.Visibility.CityExternals) {
		return tristate.Maybe
	}
	c := in.target.City
	ut := actorType(in)
	if ut == nil {
		return tristate.No
	}
	size := c.Size + ut.PopCost
	if in.settings.AddToSizeLimit > 0 && size > in.settings.AddToSizeLimit {
		return tristate.No
	}
	if c.SizeLimit > 0 && size > c.SizeLimit {
		return tristate.No
	}
	return tristate.Yes
}

// actorPopCost: the actor unit type carries population.
type actorPopCost struct{}

func (actorPopCost) String() string { return "actor has population" }

func (actorPopCost) check(in *input) tristate.Value {
	ut := actorType(in)
	return tristate.FromBool(ut != nil && ut.PopCost > 0)
}

// actorBombardRate: the actor unit type can bombard.
type actorBombardRate struct{}

func (actorBombardRate) String() string { return "actor can bombard" }

func (actorBombardRate) check(in *input) tristate.Value {
	ut := actorType(in)
	return tristate.FromBool(ut != nil && ut.BombardRate > 0)
}

// bombardAtWar: every unit at the target tile is owned by an enemy.
type bombardAtWar struct{}

func (bombardAtWar) String() string { return "at war with every target" }

func (bombardAtWar) check(in *input) tristate.Value {
	if in.hidden(in.target.Visibility.Tile) {
		return tristate.Maybe
	}
	for _, u := range in.target.Tile.Units {
		if u != nil && !atWar(in.actor, u.Owner) {
			return tristate.No
		}
	}
	return tristate.Yes
}

// nukeTarget: detonating away from the actor's own tile needs moves left
// and an enemy target.
type nukeTarget struct{}

func (nukeTarget) String() string { return "nuke target" }

func (nukeTarget) check(in *input) tristate.Value {
	from, ok1 := position(in.actor)
	to, ok2 := position(in.target)
	if !ok1 || !ok2 || from == to {
		return tristate.Yes
	}
	if in.actor.Unit == nil || in.actor.Unit.MovesLeft <= 0 {
		return tristate.No
	}
	t := in.target.Tile
	if t.City == "" && len(t.Units) == 0 {
		return tristate.No
	}
	if t.City != "" {
		owner := t.Owner
		if in.target.City != nil {
			owner = in.target.City.Owner
		}
		return tristate.FromBool(!allied(in.actor, owner))
	}
	for _, u := range t.Units {
		if !atWar(in.actor, u.Owner) {
			return tristate.No
		}
	}
	return tristate.Yes
}

// newHomeCity: the target city is not already the actor's home.
type newHomeCity struct{}

func (newHomeCity) String() string { return "different home city" }

func (newHomeCity) check(in *input) tristate.Value {
	u := in.actor.Unit
	return tristate.FromBool(u == nil || u.HomeCity != in.target.City.ID)
}

// actorUpgradePath: the actor unit type becomes obsolete.
type actorUpgradePath struct{}

func (actorUpgradePath) String() string { return "actor has upgrade path" }

func (actorUpgradePath) check(in *input) tristate.Value {
	ut := actorType(in)
	return tristate.FromBool(ut != nil && ut.ObsoletedBy != "")
}

// upgradePossible: the external upgrade test passed.
type upgradePossible struct{}

func (upgradePossible) String() string { return "upgrade possible" }

func (upgradePossible) check(in *input) tristate.Value {
	return tristate.FromBool(in.actor.Unit != nil && in.actor.Unit.CanUpgrade)
}

// paradropReady: the actor has not dropped yet this turn and has the
// moves the unit type asks for.
type paradropReady struct{}

func (paradropReady) String() string { return "ready to paradrop" }

func (paradropReady) check(in *input) tristate.Value {
	u := in.actor.Unit
	ut := actorType(in)
	if u == nil || ut == nil || u.Paradropped {
		return tristate.No
	}
	return tristate.FromBool(u.MovesLeft >= ut.ParatroopersMRReq)
}

// tileKnown: the actor has seen the target tile at least once.
type tileKnown struct{}

func (tileKnown) String() string { return "target tile known" }

func (tileKnown) check(in *input) tristate.Value {
	return tristate.FromBool(in.target.Visibility.KnowsTile || in.omniscient)
}

// airliftCapacity: the destination can still receive an airlift.
type airliftCapacity struct{}

func (airliftCapacity) String() string { return "airlift capacity" }

func (airliftCapacity) check(in *input) tristate.Value {
	if in.hidden(in.target.Visibility.CityInternals) {
		return tristate.Maybe
	}
	return tristate.FromBool(in.target.City.Airlift > 0)
}

// actorAttackStrength: the actor unit type can attack.
type actorAttackStrength struct{}

func (actorAttackStrength) String() string { return "actor can attack" }

func (actorAttackStrength) check(in *input) tristate.Value {
	ut := actorType(in)
	return tristate.FromBool(ut != nil && ut.AttackStrength > 0)
}

// attackFromNative: attacking from a non native tile needs the capability.
type attackFromNative struct{}

func (attackFromNative) String() string { return "attack from native tile" }

func (attackFromNative) check(in *input) tristate.Value {
	u := in.actor.Unit
	ut := actorType(in)
	if u == nil || u.OnNative {
		return tristate.Yes
	}
	return tristate.FromBool(ut != nil && ut.AttackNonNative)
}

// attackable: the target tile holds units and all of them are enemies.
type attackable struct{}

func (attackable) String() string { return "tile can be attacked" }

func (attackable) check(in *input) tristate.Value {
	if in.hidden(in.target.Visibility.Tile) {
		return tristate.Maybe
	}
	units := in.target.Tile.Units
	if len(units) == 0 {
		return tristate.No
	}
	for _, u := range units {
		if !atWar(in.actor, u.Owner) {
			return tristate.No
		}
	}
	return tristate.Yes
}
