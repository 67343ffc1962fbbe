// Package effects computes ruleset effect values. An effect contributes
// its value when its requirements hold at the place it is evaluated.
package effects

import (
	"github.com/nathoo/actioncore/engine/reqs"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/types"
)

// Known effect types.
const (
	SpyResistant = "Spy_Resistant"
)

// Types lists every effect type a ruleset may use.
var Types = map[string]bool{
	SpyResistant: true,
}

// Value sums the values of every effect of type typ that is active for
// place. viewer is the counterpart for relational requirements.
func Value(ev reqs.Evaluator, effects []types.Effect, typ string, place, viewer *types.Context) int {
	total := 0
	for _, e := range effects {
		if e.Type != typ {
			continue
		}
		if reqs.EvalVector(ev, e.Reqs, place, viewer, reqs.Omniscient) == tristate.Yes {
			total += e.Value
		}
	}
	return total
}

// ValueKnown reports whether viewer can tell which effects of type typ
// are active at place.
func ValueKnown(ev reqs.Evaluator, effects []types.Effect, typ string, place, viewer *types.Context) bool {
	for _, e := range effects {
		if e.Type != typ {
			continue
		}
		for _, r := range e.Reqs {
			if ev.Eval(r, place, viewer, reqs.ActorKnowledge) == tristate.Maybe {
				return false
			}
		}
	}
	return true
}
