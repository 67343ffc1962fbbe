package engine

import (
	"go.uber.org/zap"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/engine/hardreq"
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// IsActionPossible reports whether the hard requirements of an action
// allow it. Without omniscience an action the actor cannot rule out counts
// as possible.
func (e *Engine) IsActionPossible(id types.ActionID, actor, target *types.Context, omniscient bool) (bool, error) {
	a, err := e.action(id)
	if err != nil {
		return false, err
	}
	return hardreq.IsPossible(e.rs, a, actor, target, omniscient), nil
}

// IsActionEnabled is the authoritative decision: the hard requirements
// hold and at least one enabler of the action is active. Both are judged
// with full knowledge. An action against the units at a tile must be
// enabled against every one of them.
func (e *Engine) IsActionEnabled(id types.ActionID, actor, target *types.Context) (bool, error) {
	a, err := e.action(id)
	if err != nil {
		return false, err
	}
	for _, t := range decisionTargets(a, target) {
		if !e.enabledAgainst(a, actor, t) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) enabledAgainst(a *actions.Action, actor, target *types.Context) bool {
	if v := hardreq.Possible(e.rs, a, actor, target, true); v != tristate.Yes {
		e.log.Debug("action blocked",
			zap.String("action", a.RuleName),
			zap.String("gate", hardreq.Blocker(e.rs, a, actor, target, true)))
		return false
	}

	for _, en := range e.rs.Enablers(a.ID) {
		if e.enablerActive(en, actor, target, reqs.Omniscient) == tristate.Yes {
			e.log.Debug("action enabled",
				zap.String("action", a.RuleName),
				zap.String("enabler", en.ID))
			return true
		}
	}
	return false
}

// ActionEnabledTristate is the decision as far as the actor can tell. The
// answer is Maybe when something the actor cannot see decides it.
func (e *Engine) ActionEnabledTristate(id types.ActionID, actor, target *types.Context) (tristate.Value, error) {
	a, err := e.action(id)
	if err != nil {
		return tristate.No, err
	}
	out := tristate.Yes
	for _, t := range decisionTargets(a, target) {
		possible := hardreq.Possible(e.rs, a, actor, t, false)
		if possible == tristate.No {
			return tristate.No, nil
		}
		out = tristate.And(out, tristate.And(possible, e.enabledLocal(id, actor, t)))
		if out == tristate.No {
			return tristate.No, nil
		}
	}
	return out, nil
}

// decisionTargets splits a unit stack target into one context per unit.
// Any other target, or a stack the hard requirements reject as a whole,
// is decided as given.
func decisionTargets(a *actions.Action, target *types.Context) []*types.Context {
	if a.TargetKind != types.TargetUnits || target == nil || target.Unit != nil ||
		target.Tile == nil || len(target.Tile.Units) == 0 {
		return []*types.Context{target}
	}
	out := make([]*types.Context, 0, len(target.Tile.Units))
	for _, u := range target.Tile.Units {
		if u != nil {
			out = append(out, unitContext(target, u))
		}
	}
	if len(out) == 0 {
		return []*types.Context{target}
	}
	return out
}

// enabledLocal ORs the enablers of an action under the actor's knowledge,
// stopping at the first one that is known to be active.
func (e *Engine) enabledLocal(id types.ActionID, actor, target *types.Context) tristate.Value {
	out := tristate.No
	for _, en := range e.rs.Enablers(id) {
		switch e.enablerActive(en, actor, target, reqs.ActorKnowledge) {
		case tristate.Yes:
			return tristate.Yes
		case tristate.Maybe:
			out = tristate.Maybe
		}
	}
	return out
}

// enablerActive evaluates both requirement vectors of an enabler. The
// actor always knows its own side, so only the target side uses p.
func (e *Engine) enablerActive(en *types.Enabler, actor, target *types.Context, p reqs.Perspective) tristate.Value {
	v := reqs.EvalVector(e.ev, en.ActorReqs, actor, target, reqs.Omniscient)
	if v == tristate.No {
		return tristate.No
	}
	return tristate.And(v, reqs.EvalVector(e.ev, en.TargetReqs, target, actor, p))
}

// MenuEntry is one line of the actions menu for an actor and a target.
type MenuEntry struct {
	Action  *actions.Action
	Enabled tristate.Value
	Prob    actprob.Prob
	Err     error
}

// Menu evaluates every action whose target kind matches what the target
// context holds. Self targeted actions are evaluated against the actor.
// An error on one action is recorded on its entry and does not stop the
// others.
func (e *Engine) Menu(actor, target *types.Context) []MenuEntry {
	var out []MenuEntry
	for _, a := range e.rs.Catalog().All() {
		t := target
		if a.TargetKind == types.TargetSelf {
			t = actor
		}
		if !targetKindMatches(a.TargetKind, t) {
			continue
		}
		entry := MenuEntry{Action: a}
		entry.Enabled, entry.Err = e.ActionEnabledTristate(a.ID, actor, t)
		if entry.Err == nil {
			entry.Prob, entry.Err = e.EstimateActionProbability(a.ID, actor, t)
		}
		out = append(out, entry)
	}
	return out
}

// targetKindMatches reports whether target holds an entity of kind k.
func targetKindMatches(k types.TargetKind, target *types.Context) bool {
	if target == nil {
		return false
	}
	switch k {
	case types.TargetCity:
		return target.City != nil
	case types.TargetUnit:
		return target.Unit != nil
	case types.TargetUnits:
		return target.Tile != nil && len(target.Tile.Units) > 0
	case types.TargetTile, types.TargetExtras:
		return target.Tile != nil
	case types.TargetSelf:
		return target.Unit != nil
	}
	return false
}
