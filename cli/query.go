package cli

import (
	"fmt"

	"github.com/nathoo/actioncore/engine"
	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/actprob"
	"github.com/nathoo/actioncore/engine/resolve"
	"github.com/nathoo/actioncore/engine/tristate"
	"github.com/nathoo/actioncore/scenario"
	"github.com/nathoo/actioncore/types"
)

// Answer is the engine's reply to one scenario query.
type Answer struct {
	Query    scenario.Query
	Action   *actions.Action
	Possible bool
	Enabled  tristate.Value
	Prob     actprob.Prob
	Err      error
	Mismatch []string // expectations the answer did not meet
}

// Pass reports whether the query was answered and met its expectation.
func (a Answer) Pass() bool {
	return a.Err == nil && len(a.Mismatch) == 0
}

func (a Answer) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %v", a.Query.Action, a.Err)
	}
	return fmt.Sprintf("%s: possible %s, enabled %s, %s",
		a.Action.RuleName, yesNo(a.Possible), a.Enabled, a.Prob)
}

// Ask answers q for the actor and target of sc.
func Ask(eng *engine.Engine, sc *scenario.Scenario, q scenario.Query) Answer {
	ans := Answer{Query: q}
	a, err := resolve.Action(eng.Ruleset().Catalog(), q.Action)
	if err != nil {
		ans.Err = err
		return ans
	}
	ans.Action = a

	actor, target := targetFor(sc, a)
	if ans.Possible, err = eng.IsActionPossible(a.ID, actor, target, true); err != nil {
		ans.Err = err
		return ans
	}
	if ans.Enabled, err = eng.ActionEnabledTristate(a.ID, actor, target); err != nil {
		ans.Err = err
		return ans
	}
	if ans.Prob, err = eng.EstimateActionProbability(a.ID, actor, target); err != nil {
		ans.Err = err
		return ans
	}

	if x := q.Expect; x != nil {
		if x.Enabled != "" && x.Enabled != ans.Enabled.String() {
			ans.Mismatch = append(ans.Mismatch, fmt.Sprintf("enabled %s, want %s", ans.Enabled, x.Enabled))
		}
		if x.Prob != "" && x.Prob != ans.Prob.String() {
			ans.Mismatch = append(ans.Mismatch, fmt.Sprintf("probability %s, want %s", ans.Prob, x.Prob))
		}
	}
	return ans
}

// AskAll answers every query of sc.
func AskAll(eng *engine.Engine, sc *scenario.Scenario) []Answer {
	out := make([]Answer, 0, len(sc.Queries))
	for _, q := range sc.Queries {
		out = append(out, Ask(eng, sc, q))
	}
	return out
}

// targetFor returns the contexts a is asked about. Self targeted actions
// target the actor.
func targetFor(sc *scenario.Scenario, a *actions.Action) (actor, target *types.Context) {
	actor, target = sc.Contexts()
	if a.TargetKind == types.TargetSelf {
		target = actor
	}
	return actor, target
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
