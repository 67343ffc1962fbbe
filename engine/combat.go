package engine

import (
	"slices"

	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/engine/effects"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/types"
)

// Unit flags the diplomatic battle looks at.
const (
	FlagDiplomat = "Diplomat"
	FlagSpy      = "Spy"
	FlagSuperSpy = "SuperSpy"
)

// Base odds of a diplomatic battle, in percent.
const (
	battleBase     = 50
	battleSpyBonus = 25
)

// defaultPowerFact is the power factor of a unit without veteran levels.
const defaultPowerFact = 100

func hasFlag(u *types.Unit, flag string) bool {
	return u != nil && u.Type != nil && slices.Contains(u.Type.Flags, flag)
}

// powerFact returns the veteran power factor of a unit.
func powerFact(u *types.Unit) int {
	if u == nil || u.Type == nil {
		return defaultPowerFact
	}
	levels := u.Type.VeteranLevels
	if u.Veteran < 0 || u.Veteran >= len(levels) {
		return defaultPowerFact
	}
	return levels[u.Veteran].PowerFact
}

// canDefendDiplomatically reports whether u can take part in a diplomatic
// battle on the defending side.
func canDefendDiplomatically(u *types.Unit) bool {
	return hasFlag(u, FlagDiplomat) || hasFlag(u, FlagSuperSpy)
}

// diplomaticDefender picks the unit that defends the victim's tile against
// attacker. The victim itself only defends when it is a super spy. Returns
// nil when nobody defends.
func diplomaticDefender(attacker, victim *types.Unit, tile *types.Tile) *types.Unit {
	if tile == nil {
		return nil
	}
	for _, u := range tile.Units {
		if u == nil || (attacker != nil && u.Owner == attacker.Owner) {
			continue
		}
		if victim != nil && u.ID == victim.ID && !hasFlag(u, FlagSuperSpy) {
			continue
		}
		if canDefendDiplomatically(u) {
			return u
		}
	}
	return nil
}

// battleChance returns the attacker's raw chance, in percent, of beating
// defender. place is where the defender stands and viewer is the attacking
// side. The tile's defences are resolved with full knowledge.
func battleChance(ev reqs.Evaluator, effs []types.Effect, attacker, defender *types.Unit, place, viewer *types.Context) int {
	chance := battleBase
	if hasFlag(attacker, FlagSpy) {
		chance += battleSpyBonus
	}
	if hasFlag(defender, FlagSpy) {
		chance -= battleSpyBonus
	}
	chance += powerFact(attacker) - powerFact(defender)

	resist := effects.Value(ev, effs, effects.SpyResistant, place, viewer)
	chance -= chance * resist / 100

	return min(max(chance, 0), 100)
}

// diplomatBattleWin is the attacker's chance of winning against a chosen
// defender, as far as the attacking side can tell.
func (e *Engine) diplomatBattleWin(attacker, defender *types.Unit, place, viewer *types.Context) actprob.Prob {
	switch {
	case hasFlag(defender, FlagSuperSpy):
		return actprob.Impossible()
	case hasFlag(attacker, FlagSuperSpy):
		return actprob.Certain()
	}
	if !effects.ValueKnown(e.ev, e.rs.Effects, effects.SpyResistant, place, viewer) {
		return actprob.Unknown()
	}
	chance := battleChance(e.ev, e.rs.Effects, attacker, defender, place, viewer)
	return actprob.Computed(chance * actprob.ValMax / 100)
}

// diplomatBattle is the chance that the actor survives the diplomatic
// defence of the target's tile.
func (e *Engine) diplomatBattle(actor, target *types.Context) actprob.Prob {
	defender := diplomaticDefender(actor.Unit, target.Unit, target.Tile)
	if defender == nil {
		return actprob.Certain()
	}
	return e.diplomatBattleWin(actor.Unit, defender, defenderPlace(target), actor)
}

// defenderPlace is the target context stripped to the defender's tile.
func defenderPlace(target *types.Context) *types.Context {
	c := *target
	c.Unit = nil
	c.UnitType = nil
	c.Combat = nil
	return &c
}
