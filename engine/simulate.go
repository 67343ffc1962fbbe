package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/types"
)

// ErrNoBattle is returned when a simulation has nothing to roll for.
var ErrNoBattle = errors.New("no diplomatic battle")

// Simulation is the result of replaying a diplomatic battle many times.
type Simulation struct {
	Defender string // id of the defending unit
	Trials   int
	Wins     int
	Estimate actprob.Prob // the analytic chance the trials are checked against
	Seed     int64
	Position int64 // RNG position after the last trial
}

// Rate is the fraction of trials the attacker won.
func (s Simulation) Rate() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Trials)
}

// Agrees reports whether the observed win rate lies within tolerance of
// the analytic estimate.
func (s Simulation) Agrees(tolerance float64) bool {
	if s.Estimate.IsSignal() {
		return false
	}
	r := s.Rate()
	return r >= s.Estimate.ToFloatPessimist()-tolerance && r <= s.Estimate.ToFloatOptimist()+tolerance
}

// SimulateBattle fights the diplomatic battle between the actor and the
// defender of the target tile n times with rng. It is a cross-check of the
// analytic odds, with full knowledge of the tile's defences.
func (e *Engine) SimulateBattle(actor, target *types.Context, n int, rng *RNG) (Simulation, error) {
	if n <= 0 {
		return Simulation{}, fmt.Errorf("simulate: trial count %d must be positive", n)
	}
	if actor == nil || actor.Unit == nil || target == nil {
		return Simulation{}, fmt.Errorf("simulate: %w: missing actor unit or target", ErrNoBattle)
	}
	defender := diplomaticDefender(actor.Unit, target.Unit, target.Tile)
	if defender == nil {
		return Simulation{}, fmt.Errorf("simulate: %w: target tile has no diplomatic defender", ErrNoBattle)
	}

	sim := Simulation{
		Defender: defender.ID,
		Trials:   n,
		Estimate: e.diplomatBattleWin(actor.Unit, defender, defenderPlace(target), actor),
		Seed:     rng.Seed(),
	}

	chance := e.rawBattleChance(actor, defender, target)
	for i := 0; i < n; i++ {
		if rng.Percent(chance) {
			sim.Wins++
		}
	}
	sim.Position = rng.Position()

	e.log.Debug("battle simulated",
		zap.String("attacker", actor.Unit.ID),
		zap.String("defender", defender.ID),
		zap.Int("trials", n),
		zap.Float64("rate", sim.Rate()),
		zap.Stringer("estimate", sim.Estimate))
	return sim, nil
}

// rawBattleChance is the battle chance in percent with full knowledge of
// the tile's defences.
func (e *Engine) rawBattleChance(actor *types.Context, defender *types.Unit, target *types.Context) int {
	switch {
	case hasFlag(defender, FlagSuperSpy):
		return 0
	case hasFlag(actor.Unit, FlagSuperSpy):
		return 100
	}
	return battleChance(e.ev, e.rs.Effects, actor.Unit, defender, defenderPlace(target), actor)
}
