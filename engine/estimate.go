package engine

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/engine/hardreq"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// query is one probability estimate in progress.
type query struct {
	action *actions.Action
	actor  *types.Context
	target *types.Context
}

// outcome models how an action's result decides success once the action
// is known to be enabled. The set of models is closed.
type outcome interface {
	// estimate returns the success chance and the knowledge about whether
	// the action can be done, refined from known.
	estimate(e *Engine, q *query, known tristate.Value) (actprob.Prob, tristate.Value)
}

// certain: the action always succeeds when it is enabled.
type certain struct{}

func (certain) estimate(_ *Engine, _ *query, known tristate.Value) (actprob.Prob, tristate.Value) {
	return actprob.Certain(), known
}

// notImplemented: the odds are not modelled.
type notImplemented struct{}

func (notImplemented) estimate(_ *Engine, _ *query, known tristate.Value) (actprob.Prob, tristate.Value) {
	return actprob.NotImplemented(), known
}

// diplomatBattle: the actor must first win against the best diplomatic
// defender at the target.
type diplomatBattle struct{}

func (diplomatBattle) estimate(e *Engine, q *query, known tristate.Value) (actprob.Prob, tristate.Value) {
	return e.diplomatBattle(q.actor, q.target), known
}

// techTheft: the target must have a tech the actor can steal. The odds of
// the theft itself are not modelled.
type techTheft struct{}

func (techTheft) estimate(e *Engine, q *query, known tristate.Value) (actprob.Prob, tristate.Value) {
	return actprob.NotImplemented(), tristate.And(known, e.techCanBeStolen(q.actor, q.target))
}

// combat: regular battle odds are computed elsewhere and handed in with
// the target. Only a defender the actor can see counts.
type combat struct{}

func (combat) estimate(_ *Engine, q *query, known tristate.Value) (actprob.Prob, tristate.Value) {
	odds := q.target.Combat
	if odds != nil && odds.Defender != nil && odds.Defender.VisibleToAct {
		chance := int(math.Ceil(float64(actprob.ValMax) * odds.WinChance))
		return actprob.Computed(chance), known
	}
	if known == tristate.Yes {
		// The action can be done but there is no telling how it ends.
		known = tristate.Maybe
	}
	return actprob.NotImplemented(), known
}

// outcomes maps every action result to its outcome model.
var outcomes = map[types.ActionResult]outcome{
	types.ResultEstablishEmbassy:     certain{},
	types.ResultInvestigateCity:      certain{},
	types.ResultPoisonCity:           notImplemented{},
	types.ResultStealGold:            notImplemented{},
	types.ResultSabotageCity:         notImplemented{},
	types.ResultTargetedSabotageCity: notImplemented{},
	types.ResultStealTech:            techTheft{},
	types.ResultTargetedStealTech:    techTheft{},
	types.ResultInciteCity:           notImplemented{},
	types.ResultTradeRoute:           notImplemented{},
	types.ResultMarketplace:          certain{},
	types.ResultHelpWonder:           certain{},
	types.ResultBribeUnit:            diplomatBattle{},
	types.ResultSabotageUnit:         diplomatBattle{},
	types.ResultCaptureUnits:         certain{},
	types.ResultFoundCity:            certain{},
	types.ResultJoinCity:             certain{},
	types.ResultStealMaps:            notImplemented{},
	types.ResultBombard:              certain{},
	types.ResultSpyNuke:              notImplemented{},
	types.ResultNuke:                 notImplemented{},
	types.ResultDestroyCity:          certain{},
	types.ResultExpelUnit:            certain{},
	types.ResultRecycleUnit:          certain{},
	types.ResultDisbandUnit:          certain{},
	types.ResultHomeCity:             certain{},
	types.ResultUpgradeUnit:          certain{},
	types.ResultParadrop:             notImplemented{},
	types.ResultParadropConquer:      notImplemented{},
	types.ResultAirlift:              notImplemented{},
	types.ResultAttack:               combat{},
	types.ResultConquerCity:          certain{},
	types.ResultFortify:              certain{},
	types.ResultUnitMove:             certain{},
	types.ResultTransportBoard:       certain{},
	types.ResultTransportEmbark:      certain{},
	types.ResultTransportUnload:      certain{},
	types.ResultTransportDisembark:   certain{},
}

// EstimateActionProbability returns the actor's view of the chance that
// the action succeeds. Actions against every unit at a tile combine the
// estimate against each unit.
func (e *Engine) EstimateActionProbability(id types.ActionID, actor, target *types.Context) (actprob.Prob, error) {
	a, err := e.action(id)
	if err != nil {
		return actprob.Impossible(), err
	}

	var p actprob.Prob
	if a.TargetKind == types.TargetUnits {
		p = e.estimateVsUnits(a, actor, target)
	} else {
		p = e.estimate(&query{action: a, actor: actor, target: target})
	}

	e.log.Debug("action probability",
		zap.String("action", a.RuleName),
		zap.Stringer("prob", p))
	return p, nil
}

func (e *Engine) estimate(q *query) actprob.Prob {
	known := hardreq.Possible(e.rs, q.action, q.actor, q.target, false)
	if known == tristate.No {
		return actprob.Impossible()
	}
	known = tristate.And(known, e.enabledLocal(q.action.ID, q.actor, q.target))

	chance := actprob.NotImplemented()
	if model, ok := outcomes[q.action.Result]; ok {
		chance, known = model.estimate(e, q, known)
	}

	switch known {
	case tristate.No:
		return actprob.Impossible()
	case tristate.Maybe:
		return actprob.Unknown()
	}
	return actprob.Checked(chance)
}

// estimateVsUnits asks about each unit at the target tile in turn. One
// impossible unit makes the whole stack impossible, not implemented
// dominates unknown, and regular chances multiply.
func (e *Engine) estimateVsUnits(a *actions.Action, actor, target *types.Context) actprob.Prob {
	if actor == nil || target == nil || target.Tile == nil || len(target.Tile.Units) == 0 {
		return actprob.Impossible()
	}

	all := actprob.Certain()
	for _, u := range target.Tile.Units {
		p := e.estimate(&query{action: a, actor: actor, target: unitContext(target, u)})
		switch {
		case !p.Possible():
			return actprob.Impossible()
		case p.IsNotImplemented():
			all = actprob.NotImplemented()
		case p.IsUnknown():
			if !all.IsNotImplemented() {
				all = actprob.Unknown()
			}
		case all.IsSignal() || all.IsUnknown():
			// Signals and unknown dominate regular values.
		default:
			all = actprob.And(all, p)
		}
	}
	return all
}

// unitContext narrows a tile context to one of the units on it.
func unitContext(tile *types.Context, u *types.Unit) *types.Context {
	c := *tile
	c.Unit = u
	c.UnitType = nil
	if c.Player == nil || c.Player.ID != u.Owner {
		c.Player = &types.Player{ID: u.Owner}
	}
	return &c
}

// techCanBeStolen reports whether the target player knows a tech the actor
// could steal.
func (e *Engine) techCanBeStolen(actor, target *types.Context) tristate.Value {
	if actor == nil || target == nil || actor.Player == nil || target.Player == nil {
		return tristate.No
	}
	ap, tp := actor.Player, target.Player
	if ap.ID == tp.ID {
		return tristate.No
	}
	if !ap.Relations[tp.ID].SeesTechs {
		return tristate.Maybe
	}
	for _, tech := range tp.Techs {
		if slices.Contains(ap.Techs, tech) {
			continue
		}
		if e.rs.Settings.TechStealAllowHoles || slices.Contains(ap.Reachable, tech) {
			return tristate.Yes
		}
	}
	return tristate.No
}
